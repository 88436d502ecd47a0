// Package control dispatches slide commands to the host system. The
// Controller interface is the seam between swipe detection and whatever
// injects input into the presentation application.
package control

import (
	"fmt"
	"log"
	"time"

	"github.com/gestureslide/gestureslide/internal/plugin"
)

// Controller advances or retreats the presentation. Implementations must
// not propagate transient injection failures to the caller; the pipeline
// treats dispatch as fire-and-forget.
type Controller interface {
	// Advance moves to the next slide.
	Advance() error
	// Retreat moves to the previous slide.
	Retreat() error
}

// Default plugin settings.
const (
	// DefaultPluginName is the plugin used for keypress injection.
	DefaultPluginName = "keyboard"
	// DefaultTimeoutMs bounds a single plugin invocation.
	DefaultTimeoutMs = 5000
	// recoverBackoff is how long dispatch pauses after a failed injection
	// before commands are attempted again.
	recoverBackoff = time.Second
)

// PluginController sends slide commands through an external plugin.
type PluginController struct {
	manager    *plugin.Manager
	executor   *plugin.Executor
	pluginName string
	sleep      func(time.Duration)
}

// NewPluginController creates a PluginController that resolves pluginName
// through the given manager. An empty pluginName selects the keyboard plugin.
func NewPluginController(manager *plugin.Manager, pluginName string) *PluginController {
	if pluginName == "" {
		pluginName = DefaultPluginName
	}
	return &PluginController{
		manager:    manager,
		executor:   plugin.NewExecutor(DefaultTimeoutMs),
		pluginName: pluginName,
		sleep:      time.Sleep,
	}
}

// Advance moves to the next slide.
func (c *PluginController) Advance() error {
	return c.dispatch("advance", "swipe-right")
}

// Retreat moves to the previous slide.
func (c *PluginController) Retreat() error {
	return c.dispatch("retreat", "swipe-left")
}

// dispatch executes the plugin action. Failures are logged and followed by a
// short backoff rather than returned: a missed slide change must not stop
// the capture loop.
func (c *PluginController) dispatch(action, trigger string) error {
	p, err := c.manager.Get(c.pluginName)
	if err != nil {
		c.recover(action, err)
		return nil
	}

	resp, err := c.executor.Execute(p, &plugin.Request{
		Action:  action,
		Trigger: trigger,
	})
	if err != nil {
		c.recover(action, err)
		return nil
	}
	if !resp.Success {
		c.recover(action, fmt.Errorf("plugin reported failure: %s", resp.Error))
		return nil
	}

	log.Printf("Slide command dispatched: %s", action)
	return nil
}

// recover logs a failed dispatch and backs off briefly.
func (c *PluginController) recover(action string, err error) {
	log.Printf("Slide command %s failed: %v, backing off", action, err)
	c.sleep(recoverBackoff)
}

// Recorder is a Controller test double that records dispatched commands.
type Recorder struct {
	Commands []string
}

// Advance records an advance command.
func (r *Recorder) Advance() error {
	r.Commands = append(r.Commands, "advance")
	return nil
}

// Retreat records a retreat command.
func (r *Recorder) Retreat() error {
	r.Commands = append(r.Commands, "retreat")
	return nil
}
