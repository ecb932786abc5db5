package config

import (
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/spf13/viper"
)

// Env is structure containing env variables
type Env struct {
	DSN                      string `mapstructure:"DATABASE_URL" validate:"required"`
	DevEnv                   string `mapstructure:"DEV_ENV" validate:"required,oneof=DEV PROD TEST"`
	Port                     string `mapstructure:"PORT" validate:"required,numeric"`
	FrontendHostname         string `mapstructure:"FRONTEND_HOSTNAME" validate:"required,hostname"`
	RedisRatelimiterUsername string `mapstructure:"REDIS_RATELIMITER_USERNAME"`
	RedisRatelimiterPassword string `mapstructure:"REDIS_RATELIMITER_PASSWORD"`
	RedisRatelimiterHost     string `mapstructure:"REDIS_RATELIMITER_HOST" validate:"required"`
	RedisRatelimiterPort     int    `mapstructure:"REDIS_RATELIMITER_PORT" validate:"required,number"`
	SnowflakeNodeID          int64  `mapstructure:"SNOWFLAKE_NODE_ID" validate:"min=0,max=1023"`
}

// Load is a function that is used to laod the env variables from the file and the enviroment
func (e *Env) Load() {
	viper.AddConfigPath(".")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		logger.Error(err)
	}

	err = viper.Unmarshal(&e)
	if err != nil {
		logger.Errorf(err)
	}

	logger.Validatef(e)
}
