package health

import "net/http"

// severity orders statuses for aggregation; lower wins.
// Unrecognized statuses rank after every known one.
var severity = map[Status]int{
	StatusDown:         0,
	StatusOutOfService: 1,
	StatusUp:           2,
	StatusUnknown:      3,
}

// Aggregate combines statuses into one. The most severe status wins,
// so a single DOWN makes the whole set DOWN. An empty set is UP.
func Aggregate(statuses ...Status) Status {
	if len(statuses) == 0 {
		return StatusUp
	}

	best := statuses[0]
	for _, s := range statuses[1:] {
		if rank(s) < rank(best) {
			best = s
		}
	}
	return best
}

func rank(s Status) int {
	if r, ok := severity[s]; ok {
		return r
	}
	return len(severity)
}

// HTTPStatus maps a health status to the probe response code.
// DOWN and OUT_OF_SERVICE map to 503; everything else maps to 200.
func HTTPStatus(s Status) int {
	switch s {
	case StatusDown, StatusOutOfService:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}
