package ops

import "github.com/jacksmith/hp/internal/model"

// AddScanned adds the prospect described by a scanned two-line payload.
// Malformed payloads are ignored: added is false and nothing changes.
func AddScanned(s *Store, payload string) (p model.Prospect, added bool, err error) {
	p, ok := model.ParseScan(payload)
	if !ok {
		return model.Prospect{}, false, nil
	}
	// The mutation stands even when saving fails.
	return p, true, s.Add(p)
}
