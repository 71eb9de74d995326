package notify

import (
	"fmt"
	"log"

	"github.com/gen2brain/beeep"
)

// Notifier announces a completed session. Implementations must never fail
// loudly; a blocked or unavailable notification channel is a diagnostics-only
// event.
type Notifier interface {
	SessionComplete(label string, durationSeconds int)
}

// Desktop sends a system notification with an alert sound via beeep.
type Desktop struct{}

func NewDesktop(appName string) *Desktop {
	beeep.AppName = appName
	return &Desktop{}
}

func (d *Desktop) SessionComplete(label string, durationSeconds int) {
	message := fmt.Sprintf("%s finished (%d min). Time for a breather.", label, durationSeconds/60)
	if err := beeep.Alert("Session complete", message, ""); err != nil {
		log.Printf("completion notification blocked: %v", err)
	}
}

// Silent discards notifications. Used in tests and headless deployments.
type Silent struct{}

func (Silent) SessionComplete(string, int) {}
