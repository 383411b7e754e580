// Package spawn launches child processes the way a window manager must:
// detached from the WM's own process group, with the X connection file
// descriptor closed before exec so children never inherit the WM's
// socket, and reaped asynchronously so zombies never accumulate.
package spawn

import (
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Launch forks and execs name with no arguments through the shell, so
// PATH lookup and simple argument strings both work. Spawn failure is
// logged and has no other side effect.
func Launch(name string) {
	if name == "" {
		return
	}
	cmd := exec.Command("/bin/sh", "-c", name)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	// Go's exec package marks all file descriptors except
	// Stdin/Stdout/Stderr close-on-exec by default, so the X connection
	// socket is never inherited by the child.
	if err := cmd.Start(); err != nil {
		log.WithField("cmd", name).Warn("spawn failed: ", err)
		return
	}
	// Deliberately not waited here: Reap's global SIGCHLD handler
	// collects every spawned child's exit status.
	cmd.Process.Release()
}

// RunAutolaunch execs $HOME/.local/bin/autolaunch.sh once, with no
// arguments, if it exists and is executable.
func RunAutolaunch() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	path := filepath.Join(home, ".local", "bin", "autolaunch.sh")
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if info.Mode()&0111 == 0 {
		return // not executable
	}
	Launch(path)
}

// Reap starts a background goroutine that drains SIGCHLD with a
// non-blocking, restart-safe Wait4 loop. It never blocks the event
// loop, and it is the only place that waits on spawned children:
// Launch/RunAutolaunch release the process handle immediately after
// starting it.
func Reap() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGCHLD)
	go func() {
		for range sigs {
			for {
				var status unix.WaitStatus
				pid, err := unix.Wait4(-1, &status, unix.WNOHANG, nil)
				if pid <= 0 || err != nil {
					break
				}
			}
		}
	}()
}
