package uniqueid

// Observer is notified of generator lifecycle events.
// Implementations must be cheap; they run inside render passes.
type Observer interface {
	// GeneratorCreated is called when a Provider creates a generator.
	// reset is true when the generator replaces one because the
	// Provider's version changed.
	GeneratorCreated(reset bool)

	// IDIssued is called for every ID handed out.
	IDIssued()
}

// Observers fans events out to several observers. Nil entries are skipped.
func Observers(obs ...Observer) Observer {
	var list multiObserver
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	switch len(list) {
	case 0:
		return nil
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) GeneratorCreated(reset bool) {
	for _, o := range m {
		o.GeneratorCreated(reset)
	}
}

func (m multiObserver) IDIssued() {
	for _, o := range m {
		o.IDIssued()
	}
}
