package notifier

import (
	"fmt"
	"strings"

	"leavedesk/internal/events"
)

var categoryLabels = map[string]string{
	"sickLeave":     "Sick Leave",
	"casualLeave":   "Casual Leave",
	"vacationLeave": "Vacation Leave",
}

func categoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

func submittedEmployeeEmail(ev events.LeaveSubmittedEvent) (subject, body string) {
	subject = "Leave Request Submitted"
	body = fmt.Sprintf(`
<h2>Hi %s,</h2>
<p>Your leave request has been submitted and is awaiting review.</p>
%s
<p>You will be notified once a manager decides on your request.</p>
`, ev.EmployeeName, requestSummary(ev.Category, ev.StartDate, ev.EndDate, ev.TotalDays, ev.Reason))
	return subject, body
}

func submittedManagerEmail(ev events.LeaveSubmittedEvent) (subject, body string) {
	subject = fmt.Sprintf("New Leave Request from %s", ev.EmployeeName)
	body = fmt.Sprintf(`
<h2>New leave request pending review</h2>
<p><strong>%s</strong> (%s) has requested time off.</p>
%s
`, ev.EmployeeName, ev.EmployeeEmail, requestSummary(ev.Category, ev.StartDate, ev.EndDate, ev.TotalDays, ev.Reason))
	return subject, body
}

func decidedEmployeeEmail(ev events.LeaveDecidedEvent) (subject, body string) {
	verdict := "Rejected"
	if ev.EventType == events.TypeLeaveApproved {
		verdict = "Approved"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Hi %s,</h2>\n", ev.EmployeeName)
	fmt.Fprintf(&b, "<p>Your leave request has been <strong>%s</strong> by %s.</p>\n",
		strings.ToLower(verdict), ev.ManagerName)
	b.WriteString(requestSummary(ev.Category, ev.StartDate, ev.EndDate, ev.TotalDays, ev.Reason))
	if ev.ManagerComment != "" {
		fmt.Fprintf(&b, "<p>Manager comment: %s</p>\n", ev.ManagerComment)
	}

	return fmt.Sprintf("Leave Request %s", verdict), b.String()
}

func requestSummary(category, startDate, endDate string, totalDays int, reason string) string {
	return fmt.Sprintf(`
<ul>
  <li>Type: %s</li>
  <li>From: %s</li>
  <li>To: %s</li>
  <li>Total days: %d</li>
  <li>Reason: %s</li>
</ul>
`, categoryLabel(category), startDate, endDate, totalDays, reason)
}
