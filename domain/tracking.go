package domain

import "time"

// trackingLadder is the fixed ordered sequence the tracking timeline is
// projected onto. Cancelled reports have no position on the ladder.
var trackingLadder = []struct {
	status      ReportStatus
	label       string
	description string
	icon        string
}{
	{ReportPending, "Laporan Terkirim", "Laporan darurat Anda telah diterima sistem", "send"},
	{ReportAccepted, "Laporan Diterima", "Petugas telah menerima laporan Anda", "check-circle"},
	{ReportInProgress, "Sedang Ditangani", "Dinas terkait sedang menangani laporan", "progress-clock"},
	{ReportCompleted, "Selesai", "Penanganan laporan telah selesai", "flag-checkered"},
}

// statusIndex returns the ladder position of a status, or -1 for statuses
// outside the ladder.
func statusIndex(status ReportStatus) int {
	for i, step := range trackingLadder {
		if step.status == status {
			return i
		}
	}
	return -1
}

// DeriveTrackingSteps projects a report's status onto the fixed checklist.
// Steps before the current position are completed, the step at the position
// is active, later steps are neither. The active step carries the report's
// last update time. A cancelled report yields no steps.
func DeriveTrackingSteps(report *EmergencyReport) []TrackingStep {
	if report == nil {
		return nil
	}
	current := statusIndex(report.Status)
	if current < 0 {
		return nil
	}

	steps := make([]TrackingStep, 0, len(trackingLadder))
	for i, entry := range trackingLadder {
		step := TrackingStep{
			Status:      entry.status,
			Label:       entry.label,
			Description: entry.description,
			Icon:        entry.icon,
			IsCompleted: i < current,
			IsActive:    i == current,
		}
		if i == current {
			ts := report.UpdatedAt
			if ts.IsZero() {
				ts = time.Now()
			}
			step.Timestamp = &ts
		}
		steps = append(steps, step)
	}
	return steps
}
