package scheduleresolver

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status           string `json:"status"`
	LastSnapshotTime int64  `json:"last_snapshot_epoch"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, epoch := a.store.Snapshot()
	resp := healthResponse{
		Status:           "ok",
		LastSnapshotTime: epoch,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
