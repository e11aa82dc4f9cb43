// Command doser-control runs the four-channel dosing rig: pump and relay
// arbitration, runtime accounting, crash recovery, the front-panel menu
// and the diagnostic event log.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/sweeney/doser-control/internal/button"
	"github.com/sweeney/doser-control/internal/control"
	"github.com/sweeney/doser-control/internal/display"
	"github.com/sweeney/doser-control/internal/eventlog"
	"github.com/sweeney/doser-control/internal/logger"
	"github.com/sweeney/doser-control/internal/menu"
	"github.com/sweeney/doser-control/internal/nvstore"
	"github.com/sweeney/doser-control/internal/output"
)

const (
	pollInterval  = 20 * time.Millisecond
	flushInterval = 30 * time.Second
)

func main() {
	loadConfig()
	log := logger.New(viper.GetString("log_level"))

	if err := run(log); err != nil {
		log.Fatalw("fatal", "err", err)
	}
}

// loadConfig reads configs/config.yml over built-in defaults. A missing
// file is fine; the defaults describe the reference rig wiring.
func loadConfig() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("dev_mode", false)
	viper.SetDefault("store.path", "state.db")
	viper.SetDefault("eventlog.path", "events.csv")
	viper.SetDefault("eventlog.broker", "")
	viper.SetDefault("eventlog.topic", "dosing/rig/events")
	viper.SetDefault("pins.left", 5)
	viper.SetDefault("pins.right", 6)
	viper.SetDefault("pins.select", 13)
	viper.SetDefault("pins.back", 19)
	viper.SetDefault("pins.feedback", 21)
	viper.SetDefault("pins.pumps", []string{"GPIO12", "GPIO18", "GPIO24", "GPIO25"})
	viper.SetDefault("pins.relay", "GPIO26")

	viper.SetConfigName("config")
	viper.AddConfigPath("configs")
	viper.AddConfigPath("/etc/doser-control")
	_ = viper.ReadInConfig()
}

func run(log *logger.Logger) error {
	devMode := viper.GetBool("dev_mode")

	store, err := nvstore.OpenBolt(viper.GetString("store.path"))
	if err != nil {
		// Without the store there is no accounting and no recovery;
		// nothing useful can run.
		return fmt.Errorf("open state store: %w", err)
	}
	defer store.Close()

	out, err := openOutputs(devMode)
	if err != nil {
		return fmt.Errorf("open outputs: %w", err)
	}
	defer out.Close()

	sampler, err := openInputs(devMode)
	if err != nil {
		return fmt.Errorf("open inputs: %w", err)
	}
	defer sampler.Close()

	// The event log is diagnostic only: if no sink can be opened the rig
	// still runs and records simply age out of the buffer.
	sink := openSinks(log)
	defer sink.Close()
	evlog := eventlog.New(sink)

	ctl := control.New(store, out, evlog)
	ctl.Warnf = log.Warnf

	bootTime := time.Now()
	ctl.Recover(bootTime)
	for i := 0; i < control.NumChannels; i++ {
		ch := ctl.Channel(i)
		log.Infow("recovered channel", "name", ch.Name, "percent", ch.Percent,
			"running", ch.Running, "total", control.FormatTotal(ch.TotalSeconds))
	}
	evlog.Record("Rig", "START")

	disp := openDisplay(log)
	defer disp.Close()

	m := menu.New(ctl)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Infow("started", "dev_mode", devMode, "poll", pollInterval,
		"autosave", control.AutosaveInterval)

	return runLoop(loopDeps{
		sampler: sampler,
		deb:     button.NewDebouncer(button.DefaultDebounce),
		menu:    m,
		ctl:     ctl,
		evlog:   evlog,
		disp:    disp,
		log:     log,
	}, time.Now, ticker.C, sigCh)
}

func openOutputs(devMode bool) (output.Driver, error) {
	if devMode {
		return output.NewFakeDriver(), nil
	}
	pumps := viper.GetStringSlice("pins.pumps")
	if len(pumps) != control.NumChannels {
		return nil, fmt.Errorf("pins.pumps needs %d entries, got %d", control.NumChannels, len(pumps))
	}
	var names [4]string
	copy(names[:], pumps)
	return output.NewRealDriver(names, viper.GetString("pins.relay"))
}

func openInputs(devMode bool) (button.Sampler, error) {
	if devMode {
		return button.NewFakeSampler(nil), nil
	}
	return button.NewRealSampler(button.Pins{
		Left:     viper.GetInt("pins.left"),
		Right:    viper.GetInt("pins.right"),
		Select:   viper.GetInt("pins.select"),
		Back:     viper.GetInt("pins.back"),
		Feedback: viper.GetInt("pins.feedback"),
	})
}

// openSinks builds the event log fan-out: the durable file, plus the MQTT
// mirror when a broker is configured. Either may be absent; the log
// degrades to its in-memory buffer.
func openSinks(log *logger.Logger) eventlog.Sink {
	var sinks eventlog.MultiSink

	if path := viper.GetString("eventlog.path"); path != "" {
		fs, err := eventlog.NewFileSink(path)
		if err != nil {
			log.Warnw("event log file unavailable", "err", err)
		} else {
			sinks = append(sinks, fs)
		}
	}

	if broker := viper.GetString("eventlog.broker"); broker != "" {
		ms, err := eventlog.NewMQTTSink(broker, viper.GetString("eventlog.topic"))
		if err != nil {
			log.Warnw("event log mqtt mirror unavailable", "err", err)
		} else {
			sinks = append(sinks, ms)
		}
	}

	return sinks
}

func openDisplay(log *logger.Logger) display.Display {
	p, err := display.NewPanel()
	if err != nil {
		log.Warnw("display unavailable, running headless", "err", err)
		return display.NewFakeDisplay()
	}
	return p
}

type loopDeps struct {
	sampler button.Sampler
	deb     *button.Debouncer
	menu    *menu.Menu
	ctl     *control.Controller
	evlog   *eventlog.Log
	disp    display.Display
	log     *logger.Logger
}

// runLoop is the single-threaded control loop. Everything that mutates
// rig state happens here, one iteration at a time: input edges, menu
// actions, the relay phase, the autosave sweep and the log flush.
func runLoop(d loopDeps, nowFn func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	start := nowFn()
	nextSave := start.Add(control.AutosaveInterval)
	nextFlush := start.Add(flushInterval)

	var lastFrame [2]string
	drawn := false

	for {
		select {
		case s := <-sig:
			now := nowFn()
			d.log.Infow("shutting down", "signal", s.String())
			// Sync totals and leave the running flags as they are: a
			// restart resumes exactly like a power-loss recovery would.
			d.ctl.Autosave(now)
			d.evlog.Record("Rig", "STOP")
			if err := d.evlog.Flush(); err != nil {
				d.log.Warnw("final event log flush", "err", err)
			}
			return nil

		case <-tick:
			now := nowFn()

			sample, err := d.sampler.Sample()
			if err != nil {
				d.log.Warnw("input sample", "err", err)
			} else {
				for _, ev := range d.deb.Process(sample, now) {
					if ev == button.Feedback {
						d.ctl.FeedbackPulse()
					} else {
						d.menu.Handle(ev, now)
					}
				}
			}

			d.ctl.UpdateBlink(now)

			if !now.Before(nextSave) {
				d.ctl.Autosave(now)
				nextSave = now.Add(control.AutosaveInterval)
			}
			if !now.Before(nextFlush) {
				if err := d.evlog.Flush(); err != nil {
					d.log.Warnw("event log flush", "err", err)
				}
				nextFlush = now.Add(flushInterval)
			}

			line1, line2 := d.menu.Render()
			if !drawn || line1 != lastFrame[0] || line2 != lastFrame[1] {
				if err := d.disp.Show(line1, line2); err != nil {
					d.log.Warnw("display", "err", err)
				}
				lastFrame = [2]string{line1, line2}
				drawn = true
			}
		}
	}
}
