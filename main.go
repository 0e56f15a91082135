// ABOUTME: Entry point for the pcmcast player CLI
// ABOUTME: Streams audio files or generated tones through the playback engine
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pcmcast/pcmcast-go/internal/ui"
	"github.com/pcmcast/pcmcast-go/internal/version"
	"github.com/pcmcast/pcmcast-go/pkg/audio"
	"github.com/pcmcast/pcmcast-go/pkg/audio/decode"
	"github.com/pcmcast/pcmcast-go/pkg/audio/encode"
	"github.com/pcmcast/pcmcast-go/pkg/player"
	"github.com/pcmcast/pcmcast-go/pkg/tone"
)

var rootCmd = &cobra.Command{
	Use:          version.Product,
	Short:        "Real-time PCM audio player",
	Version:      version.Version,
	SilenceUsage: true,
}

var playCmd = &cobra.Command{
	Use:   "play <file.wav|file.mp3>",
	Short: "Play an audio file through the output device",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Generate a sine tone and play it or write it to a WAV file",
	Args:  cobra.NoArgs,
	RunE:  runTone,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("backend", "malgo", "audio backend (malgo, oto, portaudio)")
	pf.Int("queue-capacity", player.DefaultQueueCapacity, "playback queue capacity in chunks")
	pf.Int("chunk-frames", player.DefaultBufferFrames, "frames per chunk")
	pf.String("log-file", "pcmcast.log", "log file path (used while the TUI is active)")
	pf.Bool("no-tui", false, "disable the status TUI, stream logs instead")
	pf.Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag("backend", pf.Lookup("backend"))
	_ = viper.BindPFlag("queue-capacity", pf.Lookup("queue-capacity"))
	_ = viper.BindPFlag("chunk-frames", pf.Lookup("chunk-frames"))
	_ = viper.BindPFlag("log-file", pf.Lookup("log-file"))
	_ = viper.BindPFlag("no-tui", pf.Lookup("no-tui"))
	_ = viper.BindPFlag("debug", pf.Lookup("debug"))

	tf := toneCmd.Flags()
	tf.Float64P("frequency", "f", 440, "tone frequency in Hz")
	tf.Float64("sweep-to", 0, "sweep linearly to this frequency (0 = constant)")
	tf.DurationP("duration", "d", 3*time.Second, "tone duration")
	tf.Float64P("amplitude", "a", 0.5, "amplitude (0.0 to 1.0)")
	tf.IntP("rate", "r", 44100, "sample rate in Hz")
	tf.StringP("output", "o", "", "write a WAV file instead of playing")

	rootCmd.AddCommand(playCmd, toneCmd)
}

func initConfig() {
	viper.SetEnvPrefix("pcmcast")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.AddConfigPath("$HOME/.config/pcmcast")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("could not read configuration file", "err", err)
		}
	}

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging routes logs to a file while the TUI owns the terminal.
func setupLogging(useTUI bool) (*os.File, error) {
	f, err := os.OpenFile(viper.GetString("log-file"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}

	if useTUI {
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return f, nil
}

func newPlayer() (*player.Player, error) {
	return player.NewPlayer(player.Config{
		Backend:       viper.GetString("backend"),
		QueueCapacity: viper.GetInt("queue-capacity"),
		BufferFrames:  viper.GetInt("chunk-frames"),
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	useTUI := !viper.GetBool("no-tui")

	logFile, err := setupLogging(useTUI)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	src, err := decode.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	p, err := newPlayer()
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.ConfigureFormat(src.Format()); err != nil {
		return err
	}
	if err := p.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	log.Info("playing file", "path", args[0], "format", src.Format().String())

	// Abort on Ctrl-C or a TUI quit.
	abort := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var ctrl *ui.Control
	var tuiProg *tea.Program
	if useTUI {
		ctrl = ui.NewControl()
		tuiProg, err = ui.Run(ctrl)
		if err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		go func() { _, _ = tuiProg.Run() }()
		defer tuiProg.Quit()
	}

	go func() {
		if ctrl != nil {
			select {
			case <-sigChan:
			case <-ctrl.Quit:
			}
		} else {
			<-sigChan
		}
		close(abort)
	}()

	start := time.Now()
	if tuiProg != nil {
		go statusLoop(tuiProg, p, args[0], start, abort)
	}

	if err := feed(p, src, abort); err != nil {
		return err
	}

	if err := p.Stop(); err != nil {
		log.Warn("stop reported an error", "err", err)
	}

	if err := p.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	stats := p.Stats()
	log.Info("playback finished", "played", stats.Played, "dropped", stats.Dropped,
		"elapsed", time.Since(start).Truncate(time.Millisecond))

	return nil
}

// feed streams chunks from src into the player, retrying on
// backpressure, until the source is exhausted or abort is closed. On a
// clean end of stream it waits for the queue to drain so every accepted
// chunk is played.
func feed(p *player.Player, src decode.Source, abort <-chan struct{}) error {
	chunkFrames := viper.GetInt("chunk-frames")
	retry := p.ChunkDurationHint(chunkFrames) / 4

	for {
		select {
		case <-abort:
			return nil
		default:
		}

		chunk, err := src.ReadChunk(chunkFrames)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}

		for !p.TryEnqueue(chunk) {
			if p.State() != player.StatePlaying {
				// Device failure or external stop: nothing more to feed.
				return nil
			}
			select {
			case <-abort:
				return nil
			case <-time.After(retry):
			}
		}
	}

	// Let the worker drain what we enqueued.
	for p.State() == player.StatePlaying && p.Stats().QueueDepth > 0 {
		select {
		case <-abort:
			return nil
		case <-time.After(retry):
		}
	}

	return nil
}

// statusLoop periodically pushes playback state into the TUI.
func statusLoop(prog *tea.Program, p *player.Player, file string, start time.Time, abort <-chan struct{}) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := p.Stats()
			format, _ := p.Format()
			prog.Send(ui.StatusMsg{
				File:       file,
				Backend:    viper.GetString("backend"),
				Format:     format.String(),
				State:      p.State().String(),
				Elapsed:    time.Since(start),
				Enqueued:   stats.Enqueued,
				Played:     stats.Played,
				Dropped:    stats.Dropped,
				QueueDepth: stats.QueueDepth,
				QueueCap:   viper.GetInt("queue-capacity"),
			})
		case <-abort:
			return
		}
	}
}

func runTone(cmd *cobra.Command, args []string) error {
	frequency, _ := cmd.Flags().GetFloat64("frequency")
	sweepTo, _ := cmd.Flags().GetFloat64("sweep-to")
	duration, _ := cmd.Flags().GetDuration("duration")
	amplitude, _ := cmd.Flags().GetFloat64("amplitude")
	rate, _ := cmd.Flags().GetInt("rate")
	outPath, _ := cmd.Flags().GetString("output")

	logFile, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	format := audio.Format{SampleWidth: 2, Channels: 1, SampleRate: rate}
	chunkFrames := viper.GetInt("chunk-frames")
	numChunks := int(duration.Seconds() * float64(rate) / float64(chunkFrames))
	if numChunks < 1 {
		numChunks = 1
	}

	freq := tone.Constant(frequency)
	if sweepTo > 0 {
		freq = tone.Sweep(frequency, sweepTo, numChunks)
	}
	gen := tone.NewGenerator(format, freq, amplitude)

	if outPath != "" {
		return writeTone(outPath, gen, numChunks, chunkFrames)
	}
	return playTone(gen, numChunks, chunkFrames)
}

func writeTone(path string, gen *tone.Generator, numChunks, chunkFrames int) error {
	w, err := encode.NewWAVWriter(path, gen.Format())
	if err != nil {
		return err
	}

	for i := 0; i < numChunks; i++ {
		if err := w.WriteChunk(gen.NextChunk(chunkFrames)); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.Info("wrote tone", "path", path, "format", gen.Format().String(), "chunks", numChunks)
	return nil
}

func playTone(gen *tone.Generator, numChunks, chunkFrames int) error {
	p, err := newPlayer()
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.ConfigureFormat(gen.Format()); err != nil {
		return err
	}
	if err := p.Start(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	abort := make(chan struct{})
	go func() {
		<-sigChan
		close(abort)
	}()

	src := toneSource{gen: gen, remaining: numChunks, chunkFrames: chunkFrames}
	if err := feed(p, &src, abort); err != nil {
		return err
	}

	if err := p.Stop(); err != nil {
		log.Warn("stop reported an error", "err", err)
	}
	return p.Err()
}

// toneSource adapts the generator to the chunk source interface.
type toneSource struct {
	gen         *tone.Generator
	remaining   int
	chunkFrames int
}

func (s *toneSource) Format() audio.Format {
	return s.gen.Format()
}

func (s *toneSource) ReadChunk(frames int) ([]byte, error) {
	if s.remaining <= 0 {
		return nil, io.EOF
	}
	s.remaining--
	return s.gen.NextChunk(frames), nil
}

func (s *toneSource) Close() error { return nil }
