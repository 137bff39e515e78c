package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	cardtable "github.com/matzehuels/cardfan/internal/table"
	"github.com/matzehuels/cardfan/pkg/host"
)

const (
	tuiFrame = time.Second / 30
	gridCols = 72
	gridRows = 16
)

var (
	tuiCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiSelectedStyle = lipgloss.NewStyle().Foreground(colorYellow)
	tuiStageStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// tuiCommand opens an interactive card table in the terminal.
func (c *CLI) tuiCommand() *cobra.Command {
	var deal int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play with a card fan in the terminal",
		Long: `Play with a card fan in the terminal.

Keys:
  a          draw a card from the pile
  d          discard the card under the cursor (fade out, pool sprite)
  x          discard without recycling
  s / o      shuffle / sort
  r          toggle arc mode
  space      select the card under the cursor
  ←/→ h/l    move the cursor
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			// Fan logs would tear the alternate screen.
			quiet := newLogger(cmd.ErrOrStderr(), LogInfo)
			tbl, err := cardtable.New(float64(cfg.Demo.Width), float64(cfg.Demo.Height), cfg.Fan, quiet)
			if err != nil {
				return err
			}
			if err := tbl.Deal(deal); err != nil {
				return err
			}
			m := newTUIModel(tbl, rand.New(rand.NewPCG(seed, seed)))
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&deal, "count", "n", 5, "cards dealt at start")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "shuffle seed")
	return cmd
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tuiFrame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// tuiModel is the bubbletea model driving a card table.
type tuiModel struct {
	tbl    *cardtable.Table
	rng    *rand.Rand
	cursor int
	err    error
}

func newTUIModel(tbl *cardtable.Table, rng *rand.Rand) tuiModel {
	return tuiModel{tbl: tbl, rng: rng}
}

func (m tuiModel) Init() tea.Cmd {
	return tick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tbl.Step(tuiFrame)
		return m, tick()
	case tea.KeyMsg:
		return m.key(msg.String())
	}
	return m, nil
}

func (m tuiModel) key(k string) (tea.Model, tea.Cmd) {
	m.err = nil
	n := m.tbl.Rig.Fan.Len()
	switch k {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "a":
		_, m.err = m.tbl.Add()
	case "d", "x":
		if n > 0 {
			m.err = m.tbl.Discard(m.cursor, k == "d")
		}
	case "s":
		m.err = m.tbl.Shuffle(m.rng)
	case "o":
		m.err = m.tbl.Sort()
	case "r":
		m.err = m.tbl.ToggleArc()
	case " ":
		if cards := m.tbl.Cards(); m.cursor < len(cards) {
			m.tbl.ToggleSelect(cards[m.cursor].Key())
		}
	}
	m.cursor = max(0, min(m.cursor, m.tbl.Rig.Fan.Len()-1))
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder
	mode := "line"
	if m.tbl.Arc() {
		mode = "arc"
	}
	b.WriteString(StyleTitle.Render("cardfan"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · pile %d · pooled %d", mode, m.tbl.PileLen(), m.tbl.Rig.Fan.PoolLen())))
	b.WriteString("\n")

	w, h := m.tbl.Rig.Fan.Size()
	b.WriteString(tuiStageStyle.Render(strings.Join(drawStage(m.tbl.Rig.Stage.Sprites(), w, h, gridCols, gridRows), "\n")))
	b.WriteString("\n")
	b.WriteString(m.stateTable())
	b.WriteString("\n")
	for _, e := range m.tbl.Log() {
		b.WriteString(StyleDim.Render(e.String()))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("a add  d discard  x drop  s shuffle  o sort  r arc  space select  ←/→ move  q quit"))
	return b.String()
}

func (m tuiModel) stateTable() string {
	var rows [][]string
	for _, st := range m.tbl.Rig.Fan.States() {
		if st.Index < 0 {
			continue
		}
		sp, _ := st.Handle.(*host.Sprite)
		x, y, rot, alpha := 0.0, 0.0, 0.0, 0.0
		if sp != nil {
			x, y = sp.Position()
			rot, alpha = sp.Rotation(), sp.Opacity()
		}
		mark := " "
		if st.Index == m.cursor {
			mark = "▸"
		}
		if m.tbl.Selected(st.Key) {
			mark += iconLifted
		}
		rows = append(rows, []string{
			mark,
			strconv.Itoa(st.Index),
			m.tbl.Name(st.Key),
			st.Status.String(),
			fmt.Sprintf("%.0f", x),
			fmt.Sprintf("%.0f", y),
			fmt.Sprintf("%.1f°", rot),
			fmt.Sprintf("%.2f", alpha),
		})
	}
	cursor := m.cursor
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "#", "card", "status", "x", "y", "rot", "alpha").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 3 && row < len(rows):
				return statusStyle(rows[row][3])
			case row == cursor:
				return tuiCursorStyle
			case col == 0:
				return tuiSelectedStyle
			}
			return StyleValue
		}).
		Render()
}

// drawStage rasterizes sprites into a cols×rows character grid. Sprites
// later in the slice are drawn on top; y grows upward.
func drawStage(sprites []*host.Sprite, w, h float64, cols, rows int) []string {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}
	sx, sy := float64(cols)/w, float64(rows)/h
	for _, sp := range sprites {
		x, y := sp.Position()
		bw, bh := sp.Bounds()
		c0 := int(math.Floor(x * sx))
		c1 := int(math.Ceil((x+bw)*sx)) - 1
		r0 := rows - int(math.Ceil((y+bh)*sy))
		r1 := rows - 1 - int(math.Floor(y*sy))
		fill := '█'
		if sp.Opacity() < 0.5 {
			fill = '░'
		}
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				if r < 0 || r >= rows || c < 0 || c >= cols {
					continue
				}
				ch := fill
				switch {
				case r == r0 || r == r1:
					ch = '─'
				case c == c0 || c == c1:
					ch = '│'
				case fill == '█':
					ch = ' '
				}
				grid[r][c] = ch
			}
		}
		for i, ch := range sp.Name() {
			c := c0 + 1 + i
			if r0+1 >= 0 && r0+1 < rows && r0+1 < r1 && c >= 0 && c < c1 && c < cols {
				grid[r0+1][c] = ch
			}
		}
	}
	out := make([]string, rows)
	for r := range grid {
		out[r] = string(grid[r])
	}
	return out
}
