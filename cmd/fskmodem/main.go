// Command fskmodem is a software FSK modem: it decodes (and transmits)
// audio-frequency binary FSK signals carrying asynchronous serial data,
// supporting Bell 103/202, RTTY/Baudot, TDD, NOAA SAME, Caller-ID and
// UIC-751-3 train telegrams.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/vk2mod/fskmodem/internal/audio"
	"github.com/vk2mod/fskmodem/internal/decode"
	"github.com/vk2mod/fskmodem/internal/modem"
	"github.com/vk2mod/fskmodem/internal/monitor"
	"github.com/vk2mod/fskmodem/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		rx             = flag.Bool("rx", true, "receive mode (default)")
		tx             = flag.Bool("tx", false, "transmit mode")
		bits5          = flag.BoolP("5bit", '5', false, "5-bit (Baudot) data width")
		bits7          = flag.BoolP("7bit", '7', false, "7-bit ASCII data width")
		bits8          = flag.BoolP("8bit", '8', false, "8-bit ASCII data width")
		filePath       = flag.StringP("file", 'f', "", "read/write a WAV sound file instead of the default device")
		fMark          = flag.Float64P("mark", 'M', 0, "override mark frequency (Hz)")
		fSpace         = flag.Float64P("space", 'S', 0, "override space frequency (Hz)")
		bandWidth      = flag.Float64P("bandwidth", 'b', 0, "override analysis band width (Hz)")
		startBits      = flag.Int("startbits", -1, "override start-bit count")
		stopBits       = flag.Float64("stopbits", -1, "override stop-bit count")
		invertStartStop = flag.Bool("invert-start-stop", false, "invert start/stop bit polarity")
		syncByte       = flag.String("sync-byte", "", "sync byte, e.g. 0xAB")
		autoCarrier    = flag.BoolP("auto-carrier", 'a', false, "enable automatic carrier-band detection")
		minConfidence  = flag.Float64P("min-confidence", 'c', 1.5, "minimum confidence to treat a frame as carrier")
		searchLimit    = flag.Float64P("search-limit", 'l', 2.3, "confidence value that ends frame search early")
		rxOne          = flag.Bool("rx-one", false, "stop after the first carrier loss")
		binaryOutput   = flag.Bool("binary-output", false, "force the raw-binary decoder")
		binaryRaw      = flag.Int("binary-raw", 0, "emit raw N-bit binary instead of the mode's normal decoder")
		quiet          = flag.BoolP("quiet", 'q', false, "suppress CARRIER/NOCARRIER reports")

		sourceKind = flag.String("source", "file", "audio source: file, device, rtp")
		metricsAddr = flag.String("metrics-addr", "", "address to serve Prometheus metrics + health on")
		wsAddr      = flag.String("ws-addr", "", "address to serve the live websocket monitor on")
		mqttBroker  = flag.String("mqtt-broker", "", "MQTT broker URL for event publishing")
		capturePath = flag.String("capture", "", "dump raw samples (gzip) to this path")
		rtpAddr     = flag.String("rtp-addr", "", "multicast group:port to join for --source rtp")
		modesFilePath = flag.String("modes-file", "", "YAML file of custom/override mode presets")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "fskmodem: missing {baudmode} argument")
		return 1
	}
	baudmode := args[0]

	modes := modem.Modes
	if *modesFilePath != "" {
		f, err := os.Open(*modesFilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
			return 1
		}
		loaded, err := modem.LoadModesFile(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
			return 1
		}
		modes = loaded
	}

	modeDefaults, ok := modes[baudmode]
	if !ok {
		if _, err := strconv.ParseFloat(baudmode, 64); err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: unknown mode %q\n", baudmode)
			return 1
		}
		modeDefaults = modes["1200"]
	}

	sampleRate := 48000.0
	cfg := modem.FromMode(modeDefaults, sampleRate)
	applyOverrides(&cfg, *bits5, *bits7, *bits8, *fMark, *fSpace, *bandWidth, *startBits, *stopBits,
		*invertStartStop, *syncByte, *autoCarrier, *minConfidence, *searchLimit, *rxOne, *binaryOutput, *binaryRaw)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[fskmodem] shutting down")
		cancel()
	}()

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		metrics = telemetry.NewMetrics()
		go serveMetrics(*metricsAddr)
	}

	var wsServer *monitor.Server
	if *wsAddr != "" {
		wsServer = monitor.NewServer()
		go func() {
			log.Printf("[ws] monitor listening on %s", *wsAddr)
			if err := http.ListenAndServe(*wsAddr, wsServer); err != nil && err != http.ErrServerClosed {
				log.Printf("[ws] server error: %v", err)
			}
		}()
	}

	var mqttPub *monitor.MQTTPublisher
	if *mqttBroker != "" {
		pub, err := monitor.NewMQTTPublisher(monitor.MQTTConfig{Broker: *mqttBroker, Topic: "fskmodem/events", QoS: 0})
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: mqtt connect: %v\n", err)
			return 1
		}
		defer pub.Close()
		mqttPub = pub
	}
	_ = rx // --rx is the default; --tx is the only switch that matters
	if *tx {
		return runTX(ctx, cfg, *filePath)
	}
	return runRX(ctx, cfg, baudmode, *sourceKind, *filePath, *capturePath, *rtpAddr, *quiet, wsServer, mqttPub, metrics)
}

// eventFanout tees receiver event lines (CARRIER/NOCARRIER reports) to the
// websocket monitor and MQTT publisher, in addition to stderr.
type eventFanout struct {
	stderr io.Writer
	ws     *monitor.Server
	mqtt   *monitor.MQTTPublisher
}

func (f *eventFanout) Write(p []byte) (int, error) {
	n, err := f.stderr.Write(p)
	line := string(p)
	kind := "data"
	switch {
	case strings.Contains(line, "NOCARRIER"):
		kind = "nocarrier"
	case strings.Contains(line, "CARRIER"):
		kind = "carrier"
	}
	if f.ws != nil {
		f.ws.Broadcast(monitor.Event{Kind: kind, Data: line})
	}
	if f.mqtt != nil {
		_ = f.mqtt.Publish(kind, line)
	}
	return n, err
}

func applyOverrides(cfg *modem.Config, bits5, bits7, bits8 bool, fMark, fSpace, bandWidth float64,
	startBits int, stopBits float64, invertStartStop bool, syncByte string, autoCarrier bool,
	minConfidence, searchLimit float64, rxOne, binaryOutput bool, binaryRaw int) {

	switch {
	case bits5:
		cfg.NDataBits = 5
	case bits7:
		cfg.NDataBits = 7
	case bits8:
		cfg.NDataBits = 8
	}
	if fMark != 0 {
		cfg.FMark = fMark
	}
	if fSpace != 0 {
		cfg.FSpace = fSpace
	}
	if bandWidth != 0 {
		cfg.BandWidth = bandWidth
	}
	if startBits >= 0 {
		cfg.NStartBits = startBits
	}
	if stopBits >= 0 {
		cfg.NStopBits = stopBits
	}
	cfg.InvertStartStop = cfg.InvertStartStop || invertStartStop
	if syncByte != "" {
		if v, err := strconv.ParseUint(syncByte, 0, 8); err == nil {
			cfg.SyncByte = byte(v)
			cfg.HasSyncByte = true
		}
	}
	cfg.AutoCarrier = cfg.AutoCarrier || autoCarrier
	cfg.MinConfidence = minConfidence
	cfg.SearchLimit = searchLimit
	cfg.RxOne = cfg.RxOne || rxOne
	if binaryOutput {
		cfg.DecoderName = "rawbinary"
	}
	if binaryRaw > 0 {
		cfg.NDataBits = binaryRaw
		cfg.DecoderName = "rawbinary"
	}
}

func runRX(ctx context.Context, cfg modem.Config, modeLabel, sourceKind, filePath, capturePath, rtpAddr string, quiet bool, wsServer *monitor.Server, mqttPub *monitor.MQTTPublisher, metrics *telemetry.Metrics) int {
	src, err := openSource(sourceKind, filePath, rtpAddr, cfg.SampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return 1
	}
	defer src.Close()

	if capturePath != "" {
		f, err := os.Create(capturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: capture: %v\n", err)
			return 1
		}
		defer f.Close()
		src = audio.NewCaptureSink(src, f)
	}

	registry := decode.NewRegistry()
	dec, err := registry.Create(cfg.DecoderName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return 1
	}

	var events io.Writer = os.Stderr
	if quiet {
		events = io.Discard
	}
	if wsServer != nil || mqttPub != nil {
		events = &eventFanout{stderr: events, ws: wsServer, mqtt: mqttPub}
	}
	r, err := modem.NewReceiver(cfg, src, dec, events, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return 1
	}
	if metrics != nil {
		r.SetMetrics(metrics, modeLabel)
	}

	if err := r.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return -1
	}
	return 0
}

func runTX(ctx context.Context, cfg modem.Config, filePath string) int {
	var snk audio.Sink
	if filePath != "" {
		f, err := os.Create(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
			return 1
		}
		defer f.Close()
		fileSnk, err := audio.NewFileSink(f, int(cfg.SampleRate))
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
			return 1
		}
		defer fileSnk.Close()
		snk = fileSnk
	} else {
		deviceSnk, err := audio.NewDeviceSink(cfg.SampleRate, 1024)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
			return 1
		}
		defer deviceSnk.Close()
		snk = deviceSnk
	}

	data, err := readAllStdin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return 1
	}

	tx := modem.NewTransmitter(cfg, snk)
	if err := tx.Send(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "fskmodem: %v\n", err)
		return -1
	}
	return 0
}

func openSource(kind, filePath, rtpAddr string, sampleRate float64) (audio.Source, error) {
	switch kind {
	case "file":
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", filePath, err)
		}
		return audio.NewFileSource(f)
	case "device":
		return audio.NewDeviceSource(sampleRate, 1024)
	case "rtp":
		if rtpAddr == "" {
			return nil, fmt.Errorf("--source rtp requires --rtp-addr")
		}
		addr, err := net.ResolveUDPAddr("udp", rtpAddr)
		if err != nil {
			return nil, fmt.Errorf("resolve --rtp-addr %s: %w", rtpAddr, err)
		}
		return audio.NewRTPSource(addr, nil, sampleRate)
	default:
		return nil, fmt.Errorf("unsupported --source %q", kind)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		snap, err := telemetry.Snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "cpu_model=%s cpu_cores=%d mem_used_pct=%.1f mem_total_mb=%d\n",
			snap.CPUModel, snap.CPUCores, snap.MemUsedPct, snap.MemTotalMB)
	})
	log.Printf("[metrics] listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		log.Printf("[metrics] server error: %v", err)
	}
}

func readAllStdin() ([]byte, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}
