package riskboard

import (
	"fmt"
	"os"

	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/mqtt"
	"github.com/autopeer-io/riskboard/pkg/options"
)

func InitializeMQTTClient(opts *options.MqttOptions) (mqtt.Client, error) {
	cfg := opts.ToClientConfig()

	if cfg.ClientID == "" {
		hostname, _ := os.Hostname()
		cfg.ClientID = fmt.Sprintf("riskboard-%s", hostname)
	}

	mqttclient, err := mqtt.NewClient(cfg)
	if err != nil {
		log.Error(err, "failed to new mqtt client")
		return nil, err
	}

	return mqttclient, nil
}
