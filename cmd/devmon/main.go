package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/devtalks/devlink.go/pkg/telemetry/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/devlink/"
)

func init() {
	if val := os.Getenv("DEVLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("+/telemetry", mqtt.Handler(func(topic string, payload []byte) {
		log.Printf("%s: %s", topic, string(payload))
	}))
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
