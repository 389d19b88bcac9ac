package cellrender

// MailboxMessageType discriminates window-mailbox messages the rebuilder
// posts to the window/layout thread.
type MailboxMessageType int

const (
	// MailboxCellSize is posted after a font-size change that alters cell
	// dimensions, so the window can reflow.
	MailboxCellSize MailboxMessageType = iota
)

// MailboxMessage is one message posted to the window mailbox.
type MailboxMessage struct {
	Type       MailboxMessageType
	CellWidth  uint32
	CellHeight uint32
}

// postMailbox sends without blocking: a full mailbox means the window
// thread is behind and a dropped reflow hint is harmless, it follows the
// channel-full-skip fan-out termsocket.Manager.notifySubscribers uses for
// subscriber notification.
func (r *Rebuilder) postMailbox(msg MailboxMessage) {
	select {
	case r.mailbox <- msg:
	default:
	}
}

// Mailbox returns the channel the window thread should drain for reflow
// hints.
func (r *Rebuilder) Mailbox() <-chan MailboxMessage {
	return r.mailbox
}
