package shell

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/skip2/go-qrcode"

	"github.com/Klingon-tech/quai-shadow-wallet/pkg/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

const (
	colorCyan   = lipgloss.Color("6")
	colorGreen  = lipgloss.Color("2")
	colorRed    = lipgloss.Color("1")
)

func banner() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(colorRed).
		Render("QUAI NETWORK  ·  shadow wallet")
}

// box frames body with a border. A non-empty title becomes the first line.
func box(title, body string, border lipgloss.Border, fg lipgloss.Color) string {
	if title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(title) + "\n\n" + body
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(fg).
		Padding(0, 1).
		Render(body)
}

func roundBox(title, body string, fg lipgloss.Color) string {
	return box(title, body, lipgloss.RoundedBorder(), fg)
}

func warningBox(title, body string) string {
	return box(title, body, lipgloss.DoubleBorder(), colorRed)
}

func quai(wei *big.Int) string {
	return types.FormatQuai(wei) + " " + types.Symbol
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func newTable(header ...interface{}) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row(header))
	return tw
}

// qrText renders content as a QR code made of half-height block characters.
func qrText(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}

// numbered prints the words of a phrase in numbered columns.
func numbered(phrase string) string {
	words := strings.Fields(phrase)
	const perRow = 4
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "%2d. %-10s", i+1, w)
		if (i+1)%perRow == 0 && i+1 < len(words) {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), " ")
}
