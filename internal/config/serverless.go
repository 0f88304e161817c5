package config

import (
	"os"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// GetServerlessConfig returns the serverless configuration read from the Lambda environment
func GetServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return isRunningInLambda()
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless promotes local-only backends to their managed
// counterparts when running inside Lambda, where the filesystem is ephemeral.
func AdaptConfigForServerless(config *Config, sc *ServerlessConfig) *Config {
	if !sc.IsLambda {
		return config
	}

	switch config.Storage.Type {
	case "local", "mock":
		config.Storage.Type = "s3"
	}

	switch config.Table.Type {
	case "sqlite", "mock":
		config.Table.Type = "dynamodb"
	}

	if config.Detector.Type == "mock" {
		config.Detector.Type = "rekognition"
	}

	// Lambda always exports the function's region
	if sc.Region != "" {
		config.Region = sc.Region
	}

	config.Log.Format = "json"

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config, GetServerlessConfig()), nil
}
