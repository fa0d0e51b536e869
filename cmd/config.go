package main

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=INFO" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	DeadLetterTopic   string        `env:"DEAD_LETTER_TOPIC,default=mediator.deadletter" validate:"required"`
	DeadLetterTimeout time.Duration `env:"DEAD_LETTER_TIMEOUT,default=2s" validate:"gt=0"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	Colours           bool          `env:"COLOURS,default=true"`
}

func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
