// Command robotsim is a terminal stand-in for the remote robot. It listens
// for UDP movement commands and animates a point robot so the gesture and
// voice pipeline can be exercised without hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldWidth  = 400.0
	fieldHeight = 240.0
	tickEvery   = 33 * time.Millisecond
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fieldStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	robotStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// datagram carries one received command and where it came from.
type datagram struct {
	cmd  string
	from string
}

type cmdMsg datagram
type tickMsg time.Time

type model struct {
	robot    *Robot
	incoming <-chan datagram
	addr     string

	width    int
	height   int
	lastFrom string
	received int
	quitting bool
}

func waitForCommand(incoming <-chan datagram) tea.Cmd {
	return func() tea.Msg {
		d, ok := <-incoming
		if !ok {
			return tea.Quit()
		}
		return cmdMsg(d)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForCommand(m.incoming), tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up":
			m.robot.Apply(cmdGoForward)
		case "down":
			m.robot.Apply(cmdMoveBackward)
		case "left":
			m.robot.Apply(cmdTurnLeft)
		case "right":
			m.robot.Apply(cmdTurnRight)
		case " ":
			m.robot.Apply(cmdStop)
		}
		return m, nil

	case cmdMsg:
		if m.robot.Apply(msg.cmd) {
			m.lastFrom = msg.from
			m.received++
		}
		return m, waitForCommand(m.incoming)

	case tickMsg:
		m.robot.Step()
		return m, tick()
	}

	return m, nil
}

// fieldSize maps the terminal size to grid cells, leaving room for the
// header, status line, and border.
func (m model) fieldSize() (cols, rows int) {
	cols, rows = 78, 22
	if m.width > 4 {
		cols = m.width - 4
	}
	if m.height > 7 {
		rows = m.height - 7
	}
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	return cols, rows
}

func (m model) View() string {
	if m.quitting {
		return "Robot simulator stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Mudra Robot Simulator"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  listening on %s", m.addr)))
	sb.WriteString("\n\n")

	sb.WriteString(fieldStyle.Render(m.renderField()))
	sb.WriteString("\n")

	sb.WriteString("Command: ")
	sb.WriteString(activeStyle.Render(m.robot.Command()))
	if m.lastFrom != "" {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  from %s (%d received)", m.lastFrom, m.received)))
	}
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("arrows drive manually, space stops, q quits"))
	sb.WriteString("\n")

	return sb.String()
}

func (m model) renderField() string {
	cols, rows := m.fieldSize()
	rx := int(m.robot.X / fieldWidth * float64(cols))
	ry := int(m.robot.Y / fieldHeight * float64(rows))
	if rx >= cols {
		rx = cols - 1
	}
	if ry >= rows {
		ry = rows - 1
	}

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			if x == rx && y == ry {
				sb.WriteString(robotStyle.Render(string(m.robot.glyph())))
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// listen receives command datagrams and forwards them to the TUI.
func listen(conn *net.UDPConn, out chan<- datagram) {
	buf := make([]byte, 1024)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			close(out)
			return
		}
		out <- datagram{cmd: string(buf[:n]), from: addr.String()}
	}
}

func main() {
	listenAddr := flag.String("listen", ":5005", "UDP address to receive commands on")
	flag.Parse()

	addr, err := net.ResolveUDPAddr("udp", *listenAddr)
	if err != nil {
		log.Fatalf("Bad listen address %s: %v", *listenAddr, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *listenAddr, err)
	}
	defer conn.Close()

	incoming := make(chan datagram, 16)
	go listen(conn, incoming)

	m := model{
		robot:    NewRobot(fieldWidth, fieldHeight),
		incoming: incoming,
		addr:     conn.LocalAddr().String(),
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
