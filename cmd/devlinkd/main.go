package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/golang/glog"

	"github.com/devtalks/devlink.go/pkg/engine"
	"github.com/devtalks/devlink.go/pkg/env"
	fx "github.com/devtalks/devlink.go/pkg/framework"
	"github.com/devtalks/devlink.go/pkg/link"
	"github.com/devtalks/devlink.go/pkg/link/ws"
	"github.com/devtalks/devlink.go/pkg/periph/sim"
	"github.com/devtalks/devlink.go/pkg/telemetry/mqtt"

	_ "github.com/devtalks/devlink.go/pkg/cmds/all"
)

func init() {
	env.SetupFlags()
}

// current tracks the engine serving the active link, so the SIGUSR1
// escape hook has something to poke.
type current struct {
	lock sync.Mutex
	eng  *engine.Engine
}

func (c *current) set(eng *engine.Engine) {
	c.lock.Lock()
	c.eng = eng
	c.lock.Unlock()
}

func (c *current) escape() {
	c.lock.Lock()
	eng := c.eng
	c.lock.Unlock()
	if eng != nil {
		eng.Hooks().SetMode(engine.ModeInteractive)
	}
}

func main() {
	flag.Parse()

	conf := env.NewConfig()
	pins, err := conf.PinIDs()
	if err != nil {
		glog.Exitf("invalid -pins: %v", err)
	}
	bank := sim.NewBank(pins...)

	var sinks []engine.TelemetrySink
	if conf.MQTTBrokerURL != "" {
		bridge, err := mqtt.NewBridge(conf.MQTTBrokerURL, conf.DeviceID)
		if err != nil {
			glog.Exitf("mqtt bridge: %v", err)
		}
		if err = bridge.Connect(); err != nil {
			glog.Exitf("mqtt connect: %v", err)
		}
		defer bridge.Close()
		glog.Infof("telemetry bridged to %s/%s", conf.MQTTBrokerURL, bridge.Topic)
		sinks = append(sinks, bridge)
	}

	var cur current
	factory := link.Factory(func(rw io.ReadWriter) fx.Runnable {
		eng := engine.New(rw, bank, engine.Options{
			Pins:         pins,
			BufferSize:   conf.BufferSize,
			EmitInterval: conf.EmitInterval,
			Echo:         conf.Echo,
		}).AddSink(sinks...)
		cur.set(eng)
		return eng
	})

	// SIGUSR1 forces the active engine back to interactive mode, for
	// regaining a prompt on a console saturated by streaming output.
	usrCh := make(chan os.Signal, 1)
	signal.Notify(usrCh, syscall.SIGUSR1)
	go func() {
		for range usrCh {
			glog.Info("forcing interactive mode")
			cur.escape()
		}
	}()

	runner := fx.NewRunner().HandleSignals()
	serving := false
	if conf.ListenWS != "" {
		runner.Go(&ws.Server{Addr: conf.ListenWS, Factory: factory})
		serving = true
	}
	if conf.ListenTCP != "" {
		runner.Go(&link.TCPServer{Addr: conf.ListenTCP, Factory: factory})
		serving = true
	}
	if !serving {
		runner.Go(fx.NamedRun("stdio", factory(link.StdIO())))
	}
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
