package mailer_test

import (
	"strings"
	"testing"

	"github.com/boardhub/boardhub/internal/app/system/mailer"
)

func TestBuildInviteEmail(t *testing.T) {
	email := mailer.BuildInviteEmail(mailer.InviteEmailData{
		SiteName:    "BoardHub",
		InviterName: "Alice",
		ProjectName: "Launch Plan",
		JoinLink:    "http://localhost:3000/project/bob@example.com/abc123",
	})

	if email.To != "" {
		t.Errorf("To should be left for the caller, got %q", email.To)
	}
	if !strings.Contains(email.Subject, "Alice") || !strings.Contains(email.Subject, "Launch Plan") {
		t.Errorf("subject missing inviter or project: %q", email.Subject)
	}

	for name, body := range map[string]string{"text": email.TextBody, "html": email.HTMLBody} {
		if !strings.Contains(body, "http://localhost:3000/project/bob@example.com/abc123") {
			t.Errorf("%s body missing join link", name)
		}
		if !strings.Contains(body, "Alice") {
			t.Errorf("%s body missing inviter name", name)
		}
	}
	if !strings.Contains(email.HTMLBody, "BoardHub") {
		t.Error("html body missing site name")
	}
}

func TestBuildInviteEmail_EscapesHTML(t *testing.T) {
	email := mailer.BuildInviteEmail(mailer.InviteEmailData{
		SiteName:    "BoardHub",
		InviterName: "<script>alert(1)</script>",
		ProjectName: "Plan",
		JoinLink:    "http://localhost:3000/join",
	})

	if strings.Contains(email.HTMLBody, "<script>") {
		t.Error("inviter name not escaped in html body")
	}
}
