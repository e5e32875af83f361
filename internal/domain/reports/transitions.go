package reports

// allowed: estado actual -> estados siguientes válidos.
// closed es terminal.
var allowed = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusInProgress, StatusClosed},
	StatusAssigned:   {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusRescued, StatusClosed},
	StatusRescued:    {StatusClosed},
}

// CanTransition indica si from -> to es válido. Repetir el mismo estado siempre se permite.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}
