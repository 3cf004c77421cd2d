package panel

type (
	// Alert is one pending user-visible message. The model only queues
	// alerts; turning them into dialogs/toasts is the host's job.
	Alert struct {
		Name     string
		Message  string
		Severity AlertSeverity
	}

	AlertSeverity int

	// Alerts is a Model view for queuing and draining alerts.
	Alerts Model
)

const (
	Info AlertSeverity = iota
	Warning
	Error
)

func (m *Model) Alerts() *Alerts { return (*Alerts)(m) }

// Add queues an anonymous alert.
func (m *Alerts) Add(message string, severity AlertSeverity) {
	m.alerts = append(m.alerts, Alert{Message: message, Severity: severity})
}

// AddNamed queues an alert that replaces any pending alert with the
// same name, so a repeating condition shows up once.
func (m *Alerts) AddNamed(name, message string, severity AlertSeverity) {
	for i := range m.alerts {
		if m.alerts[i].Name == name {
			m.alerts[i] = Alert{Name: name, Message: message, Severity: severity}
			return
		}
	}
	m.alerts = append(m.alerts, Alert{Name: name, Message: message, Severity: severity})
}

// Iterate yields the pending alerts in order.
func (m *Alerts) Iterate(yield func(a Alert) bool) {
	for _, a := range m.alerts {
		if !yield(a) {
			return
		}
	}
}

// Drain returns the pending alerts and clears the queue.
func (m *Alerts) Drain() []Alert {
	ret := m.alerts
	m.alerts = nil
	return ret
}
