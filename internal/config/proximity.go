package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/shenikar/zone_proximity/internal/models"
)

const (
	// DefaultZone - зона, используемая, если в файле она не указана
	DefaultZone = "home"
	// DefaultToleranceMeters - допуск направления движения по умолчанию
	DefaultToleranceMeters = 50.0
)

// ConfigurationError - фатальная ошибка настроек, при которой оценка близости не запускается
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("proximity configuration: %s: %s", e.Field, e.Reason)
}

// Proximity - неизменяемые настройки отслеживания, загружаемые один раз при старте
type Proximity struct {
	Zone      string
	Devices   []string
	Overrides models.OverrideZoneSet
	Tolerance float64

	tracked map[string]struct{}
}

// IsTracked сообщает, отслеживается ли источник с указанным идентификатором
func (p Proximity) IsTracked(id string) bool {
	_, ok := p.tracked[id]
	return ok
}

// proximityFile - формат файла proximity.yaml
type proximityFile struct {
	Zone          string   `yaml:"zone" validate:"required"`
	OverrideZones []string `yaml:"override_zones" validate:"dive,required"`
	Devices       []string `yaml:"devices" validate:"required,min=1,dive,required"`
	Tolerance     *float64 `yaml:"tolerance" validate:"omitempty,gte=0"`
}

// LoadProximity читает и проверяет файл настроек близости
func LoadProximity(path string) (Proximity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Proximity{}, fmt.Errorf("failed to read proximity config %s: %w", path, err)
	}
	return ParseProximity(data)
}

// ParseProximity разбирает YAML с настройками близости.
// Отсутствие списка устройств возвращает *ConfigurationError.
func ParseProximity(data []byte) (Proximity, error) {
	var file proximityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Proximity{}, fmt.Errorf("failed to parse proximity config: %w", err)
	}

	if strings.TrimSpace(file.Zone) == "" {
		file.Zone = DefaultZone
	}

	if err := validator.New().Struct(file); err != nil {
		return Proximity{}, toConfigurationError(err)
	}

	tolerance := DefaultToleranceMeters
	if file.Tolerance != nil {
		tolerance = *file.Tolerance
	}

	p := Proximity{
		Zone:      file.Zone,
		Devices:   make([]string, 0, len(file.Devices)),
		Overrides: models.NewOverrideZoneSet(file.OverrideZones...),
		Tolerance: tolerance,
		tracked:   make(map[string]struct{}, len(file.Devices)),
	}
	for _, device := range file.Devices {
		if _, dup := p.tracked[device]; dup {
			continue
		}
		p.tracked[device] = struct{}{}
		p.Devices = append(p.Devices, device)
	}
	return p, nil
}

func toConfigurationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return &ConfigurationError{Field: "proximity", Reason: err.Error()}
	}

	fe := validationErrs[0]
	field := strings.ToLower(fe.StructField())
	switch fe.StructField() {
	case "Devices":
		field = "devices"
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return &ConfigurationError{Field: field, Reason: "devices not found in config"}
		}
	case "OverrideZones":
		field = "override_zones"
	}
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf("failed on the '%s' rule", fe.Tag())}
}
