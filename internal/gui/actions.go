package gui

import "fmt"

type Action string

const (
	ActionCapture  Action = "capture"
	ActionSave     Action = "save"
	ActionUpload   Action = "upload"
	ActionCopyLink Action = "copy-link"
	ActionSignOut  Action = "sign-out"
)

func (c *Controller) buildActions() map[Action]func() {
	return map[Action]func(){
		ActionCapture:  c.TakeScreenshot,
		ActionSave:     c.SaveImage,
		ActionUpload:   c.UploadImage,
		ActionCopyLink: c.CopyLink,
		ActionSignOut:  c.SignOut,
	}
}

// Dispatch runs the handler bound to action. Unknown actions are logged and
// reported as not handled.
func (c *Controller) Dispatch(action Action) bool {
	handler, ok := c.actions[action]
	if !ok {
		c.logger.Error("Controller", fmt.Errorf("unknown action %q", string(action)), nil)
		return false
	}

	c.logger.Debug("Controller", "dispatch", map[string]interface{}{
		"action": string(action),
	})
	handler()
	return true
}
