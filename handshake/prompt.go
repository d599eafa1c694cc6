package handshake

import (
	"fmt"
	"strings"

	"github.com/rat/modsync/host"
	"github.com/rat/modsync/inventory"
)

const (
	DecisionTitle = "Mod Synchronization Required"
	AcceptLabel   = "Download and Install"
	DeclineLabel  = "Cancel Connection"
)

// Notification titles.
const (
	titleSync         = "Mod Sync"
	titleVersion      = "Mod Sync Version Mismatch"
	titleMismatch     = "Mod Mismatch"
	titleIncompatible = "Server Incompatible"
	titleCancelled    = "Connection Cancelled"
	titleFailed       = "Download Failed"
	titleDownloaded   = "Download Complete"
	titleRestart      = "Restart Required"
	titleReconnect    = "Reconnecting"
)

// Prompt builds the question asked before anything is downloaded.
func Prompt(cmp inventory.Comparison, archive bool) host.Decision {
	var b strings.Builder
	b.WriteString("The server requires a different set of mods.\n")
	if len(cmp.Missing) > 0 {
		b.WriteString("\nMissing mods:\n")
		for _, desc := range cmp.Missing {
			fmt.Fprintf(&b, "  - %s v%s\n", desc.Name(), desc.Version)
		}
	}
	if len(cmp.Mismatched) > 0 {
		b.WriteString("\nVersion mismatches:\n")
		for _, m := range cmp.Mismatched {
			fmt.Fprintf(&b, "  - %s: %s → %s\n", m.Remote.Name(), m.Local.Version, m.Remote.Version)
		}
	}
	if archive {
		b.WriteString("\nThe server provides the complete mod pack as one archive. ")
		b.WriteString("Your current mods folder will be backed up.\n")
	}
	b.WriteString("\nDownload the required mods from the server?")
	return host.Decision{
		Title:   DecisionTitle,
		Message: b.String(),
		Accept:  AcceptLabel,
		Decline: DeclineLabel,
	}
}
