// Package sh provides an interactive shell driving a local display.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/vfd.go/pkg/env"
	"github.com/robotalks/vfd.go/pkg/vfd"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Device *vfd.Device
}

const shellKey = "$shell"

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&TextCmd,
		&TextGetCmd,
		&LedCmd,
		&VolumeCmd,
		&LedsCmd,
		&ClearCmd,
		&StatusCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell on an opened device.
func New(dev *vfd.Device) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Device: dev,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("vfd > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Status is the printable display state.
type Status struct {
	Text   string         `json:"text"`
	Mask   uint32         `json:"mask"`
	Levels map[string]int `json:"levels"`
}

// Status collects the display state.
func (s *Shell) Status() Status {
	st := Status{
		Text:   string(s.Device.Text()),
		Mask:   uint32(s.Device.Mask()),
		Levels: make(map[string]int),
	}
	for _, ind := range s.Device.Indicators() {
		st.Levels[ind.Name()] = ind.Level()
	}
	return st
}

func (s *Shell) print(c *ishell.Context, v interface{}, plain string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(plain)
}

func (s *Shell) setLevel(c *ishell.Context, name, value string) {
	ind, ok := s.Device.Indicator(name)
	if !ok {
		c.Err(fmt.Errorf("unknown indicator %q", name))
		return
	}
	level, err := strconv.Atoi(value)
	if err != nil {
		c.Err(fmt.Errorf("invalid level %q", value))
		return
	}
	if err = ind.Set(level); err != nil {
		c.Err(err)
		return
	}
	if !s.OutputJSON {
		c.Println("OK")
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// TextCmd replaces the text.
	TextCmd = ishell.Cmd{
		Name:    "text",
		Aliases: []string{"t"},
		Help:    "TEXT...",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if err := s.Device.SetText(strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
				return
			}
			if !s.OutputJSON {
				c.Println("OK")
			}
		},
	}

	// TextGetCmd prints the text.
	TextGetCmd = ishell.Cmd{
		Name:    "text.get",
		Aliases: []string{"tg"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			text := string(s.Device.Text())
			s.print(c, text, strconv.Quote(text))
		},
	}

	// LedCmd sets an indicator.
	LedCmd = ishell.Cmd{
		Name:    "led",
		Aliases: []string{"l"},
		Help:    "NAME LEVEL",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("expect NAME LEVEL"))
				return
			}
			ShellFrom(c).setLevel(c, c.Args[0], c.Args[1])
		},
	}

	// VolumeCmd sets the volume bar.
	VolumeCmd = ishell.Cmd{
		Name:    "volume",
		Aliases: []string{"vol", "v"},
		Help:    "LEVEL",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("expect LEVEL"))
				return
			}
			ShellFrom(c).setLevel(c, vfd.VolumeName, c.Args[0])
		},
	}

	// LedsCmd lists indicators.
	LedsCmd = ishell.Cmd{
		Name:    "leds",
		Aliases: []string{"ls"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st := s.Status()
			var lines []string
			for _, ind := range s.Device.Indicators() {
				lines = append(lines, fmt.Sprintf("%-12s %2d/%d", ind.Name(), st.Levels[ind.Name()], ind.MaxLevel()))
			}
			s.print(c, st.Levels, strings.Join(lines, "\n"))
		},
	}

	// ClearCmd blanks the display.
	ClearCmd = ishell.Cmd{
		Name:    "clear",
		Aliases: []string{"cls"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if err := s.Device.Clear(); err != nil {
				c.Err(err)
				return
			}
			if !s.OutputJSON {
				c.Println("OK")
			}
		},
	}

	// StatusCmd prints text and icon mask.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			st := s.Status()
			s.print(c, st, fmt.Sprintf("text=%q mask=0x%05x volume=%d",
				st.Text, st.Mask, vfd.IconMask(st.Mask).Volume()))
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	dev := env.MustNewConfig().MustOpen()
	defer dev.Close()
	New(dev).Run(flag.Args()...)
}
