package emailsvc

import (
	"fmt"
	"io"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/trezcool/clubboard/core"
)

type ConsoleService struct {
	out              io.Writer
	defaultFromEmail mail.Address
	subjPrefix       string

	mu   sync.Mutex
	Sent []core.EmailMessage
}

var _ core.EmailService = (*ConsoleService)(nil)

// NewConsoleService prints messages to out instead of sending them.
func NewConsoleService(out io.Writer, conf *core.Config) *ConsoleService {
	return &ConsoleService{
		out:              out,
		defaultFromEmail: conf.DefaultFromEmail,
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

func (svc *ConsoleService) Send(msg *core.EmailMessage) error {
	if !msg.HasRecipients() {
		return errNoRecipients
	}
	if !msg.HasContent() && !msg.HasAttachments() {
		return errEmptyMessage
	}
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", joinAddresses(msg.To))
	if len(msg.Cc) > 0 {
		_, _ = fmt.Fprintf(body, "CC: %s\r\n", joinAddresses(msg.Cc))
	}
	_, _ = fmt.Fprint(body, "\r\n")
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.Body)
	for _, at := range msg.Attachments {
		_, _ = fmt.Fprintf(body, "[attachment %s (%s, %d bytes)]\r\n", at.Filename, at.ContentType, len(at.Content))
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, err := io.WriteString(svc.out, body.String()); err != nil {
		return err
	}
	svc.Sent = append(svc.Sent, *msg)
	return nil
}

func joinAddresses(addrs []mail.Address) string {
	toJoin := make([]string, 0, len(addrs))
	for _, a := range addrs {
		toJoin = append(toJoin, a.String())
	}
	return strings.Join(toJoin, ", ")
}
