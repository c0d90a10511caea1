// Package sh provides the ishell backed interactive flasher.
package sh

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/abiosoft/ishell"

	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/env"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/run"
	"github.com/glencoe/ElasticNodeBitstreamFlasher/pkg/xfer"
)

// Shell wraps ishell with flasher commands.
type Shell struct {
	Interactive bool
	StrictAck   bool
	AutoOpen    bool
	Ctx         context.Context

	Shell  *ishell.Shell
	Config *env.Config

	port io.ReadWriteCloser
}

const (
	shellKey   = "$shell"
	idlePrompt = "[none] > "
)

var (
	// flags

	evalOnly  bool
	strictAck bool

	// commands
	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&FlashCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&strictAck, "strict-ack", strictAck, "Abort the upload when the bootloader rejects a packet.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		StrictAck:   strictAck,
		Ctx:         context.Background(),

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(idlePrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command funcs that require an open device.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).port == nil {
			c.Err(fmt.Errorf("no device open"))
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the configured device.
func (s *Shell) Open() error {
	if s.port != nil {
		s.Close()
	}
	port, err := s.Config.Open()
	if err != nil {
		return err
	}
	s.port = port
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Config.DeviceURL))
	return nil
}

// Close closes the current device.
func (s *Shell) Close() {
	if s.port != nil {
		s.port.Close()
		s.port = nil
		s.Shell.SetPrompt(idlePrompt)
	}
}

// Flash uploads the bitstream file to the given device address.
// A canceled transfer closes the port: that is the only way to unblock
// a read stuck on a silent bootloader. It leaves the device-side
// session dangling, so the device must be reopened afterwards.
func (s *Shell) Flash(path string, address uint32) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	port := s.port
	tx := xfer.NewTransmitter(xfer.NewProtocol(xfer.NewStream(port)))
	tx.StrictAck = s.StrictAck
	err = run.WithCancel(s.Ctx, func() { port.Close() }, func() error {
		return tx.Upload(s.Ctx, data, address)
	})
	if err == context.Canceled {
		s.port = nil
		s.Shell.SetPrompt(idlePrompt)
	}
	return err
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen && s.Config.DeviceURL != "" {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.DeviceURL)
		}
		if err := s.Open(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.DeviceURL, err)
		}
	}

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
	// OpenCmd opens a device.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[DEVICE_URL]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.DeviceURL = c.Args[0]
			}
			if s.Config.DeviceURL == "" {
				c.Err(fmt.Errorf("no device configured"))
				return
			}
			if err := s.Open(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the current device.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"c"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// FlashCmd uploads a bitstream file.
	FlashCmd = ishell.Cmd{
		Name:    "flash",
		Aliases: []string{"f"},
		Help:    "FILE [ADDRESS]",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("bitstream file expected"))
				return
			}
			var address uint64
			if len(c.Args) > 1 {
				var err error
				if address, err = strconv.ParseUint(c.Args[1], 0, 32); err != nil {
					c.Err(fmt.Errorf("invalid address: %v", err))
					return
				}
			}
			if err := s.Flash(c.Args[0], uint32(address)); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	s := New(env.NewConfig()).WithAutoOpen(true)
	s.Ctx = ctx
	s.Run(flag.Args()...)
	s.Close()
}
