package teaprogram

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/flytaly/scrapconv/pkg/syncer"
)

type conversionMsg syncer.Conversion

func waitForConversion(ch chan syncer.Conversion) tea.Cmd {
	return func() tea.Msg {
		return conversionMsg(<-ch)
	}
}

func waitForLogs(logChan <-chan log.Record) tea.Cmd {
	return func() tea.Msg {
		return log.Record(<-logChan)
	}
}
