package main

import "github.com/hupe1980/kmedoids/config"

func configMinIO(endpoint string) config.MinIOConfig {
	return config.MinIOConfig{Endpoint: endpoint}
}
