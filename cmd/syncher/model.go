package teaprogram

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/convert"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/flytaly/scrapconv/pkg/syncer"
	"github.com/gookit/color"
)

const historySize = 200

type ProgramCfg struct {
	Interval    time.Duration
	LogPath     string
	Root        string
	MaxFileSize int64 // bytes
	Config      config.Config
	Verbose     bool
}

type processedMsg struct {
	took    time.Duration
	sources int
}

type model struct {
	cfg         ProgramCfg
	syncer      *syncer.Syncer
	records     <-chan log.Record
	conversions chan syncer.Conversion

	history  []syncer.Conversion
	logs     []log.Record
	last     processedMsg
	started  bool
	watching bool
	showLog  bool
	quitting bool
	width    int
	height   int
}

func newSyncer(cfg ProgramCfg, logger log.Logger, onConvert func(syncer.Conversion)) *syncer.Syncer {
	conv := convert.New(cfg.Config, convert.WithLogger(logger))
	return syncer.New(os.DirFS(cfg.Root), cfg.Root, conv, logger, func(s *syncer.Syncer) {
		if cfg.MaxFileSize > 0 {
			s.MaxFileSize = cfg.MaxFileSize
		}
		s.OnConvert = onConvert
	})
}

func process(s *syncer.Syncer, resume bool) tea.Cmd {
	return func() tea.Msg {
		var took time.Duration
		if resume {
			took = s.Resume()
		} else {
			took = s.ProcessFiles()
		}
		return processedMsg{took: took, sources: s.SourcesNum()}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		process(m.syncer, false),
		waitForConversion(m.conversions),
		waitForLogs(m.records),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.syncer.StopEventListeners()
			_ = m.syncer.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Log):
			m.showLog = !m.showLog
			return m, nil
		case key.Matches(msg, keys.Watch):
			if m.watching {
				m.syncer.Pause()
				m.watching = false
				return m, nil
			}
			m.watching = true
			if !m.started {
				m.started = true
				m.syncer.Watch(m.cfg.Interval)
			}
			return m, process(m.syncer, true)
		}
	case processedMsg:
		m.last = msg
		if m.watching && !m.started {
			m.started = true
			m.syncer.Watch(m.cfg.Interval)
		}
		return m, nil
	case conversionMsg:
		m.history = append(m.history, syncer.Conversion(msg))
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
		return m, waitForConversion(m.conversions)
	case log.Record:
		m.logs = append(m.logs, msg)
		if len(m.logs) > historySize {
			m.logs = m.logs[len(m.logs)-historySize:]
		}
		return m, waitForLogs(m.records)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	state := color.Yellow.Sprint("paused")
	if m.watching {
		state = color.Green.Sprint("watching")
	}
	result := fmt.Sprintf(" %s  Watch path: %s (%s)\n", color.Green.Sprint("➜"), color.Cyan.Sprint(m.cfg.Root), state)
	result += fmt.Sprintf(" %s converted in %s\n\n",
		humanize.Comma(int64(m.last.sources))+" files", m.last.took.Round(time.Millisecond))

	limit := max(m.height-7, 5)
	if m.showLog {
		result += printRecords(m.logs, limit)
	} else {
		result += printConversions(m.history, limit, m.width)
	}
	return result + "\n " + helpView(keys) + "\n"
}

// NewProgram creates the watch TUI. Log lines go to the log file when one is
// set and are always shown in the log view.
func NewProgram(cfg ProgramCfg) (*tea.Program, error) {
	var next log.Logger = log.NewEmptyLog()
	if cfg.LogPath != "" {
		var err error
		if next, err = log.New(cfg.LogPath, cfg.Verbose); err != nil {
			return nil, err
		}
	}
	logger := log.NewChanLog(historySize, next)
	conversions := make(chan syncer.Conversion, historySize)
	s := newSyncer(cfg, logger, func(c syncer.Conversion) {
		select {
		case conversions <- c:
		default:
		}
	})
	return tea.NewProgram(model{
		cfg:         cfg,
		syncer:      s,
		records:     logger.Records(),
		conversions: conversions,
		watching:    cfg.Interval > 0,
	}), nil
}

// RunHeadless converts the directory, then keeps it in sync until ctx is done.
// Used when the output isn't a terminal.
func RunHeadless(ctx context.Context, cfg ProgramCfg) error {
	logger, err := log.New(cfg.LogPath, cfg.Verbose)
	if err != nil {
		return err
	}
	s := newSyncer(cfg, logger, nil)
	took := s.ProcessFiles()
	logger.Info("Converted %d files in %s", s.SourcesNum(), took.Round(time.Millisecond))
	if cfg.Interval <= 0 {
		return s.Close()
	}
	s.Watch(cfg.Interval)
	logger.Info("Watching %s", cfg.Root)
	<-ctx.Done()
	s.StopEventListeners()
	return s.Close()
}
