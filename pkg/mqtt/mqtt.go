package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout  = 10 * time.Second
	disconnectQuiet = 250
)

// Options - параметры подключения к MQTT брокеру
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	// OnConnect вызывается при первом подключении и после каждого переподключения
	OnConnect func(client pahomqtt.Client)
}

// NewMQTTClient создает клиента MQTT и подключается к брокеру
func NewMQTTClient(opts Options) (pahomqtt.Client, error) {
	clientOpts := pahomqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(false).
		SetOrderMatters(true)

	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}
	if opts.OnConnect != nil {
		clientOpts.SetOnConnectHandler(opts.OnConnect)
	}

	client := pahomqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect: timeout after %v", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return client, nil
}

// Close отключается от брокера, давая завершиться отправке сообщений
func Close(client pahomqtt.Client) {
	if client != nil && client.IsConnected() {
		client.Disconnect(disconnectQuiet)
	}
}
