package handler

import (
	"context"
	"net/http"
)

// Pinger はデータベース疎通確認のインターフェース。*sql.DBが満たす。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler はインデックスとヘルスチェックのHTTPハンドラー。
type SystemHandler struct {
	db Pinger
}

// NewSystemHandler はSystemHandlerを生成する。
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// apiInfoAttributes はインデックスリソースの属性。
type apiInfoAttributes struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Endpoints string `json:"endpoints"`
}

// healthAttributes はヘルスチェックリソースの属性。
type healthAttributes struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Index はAPI情報を返す。
// GET /
func (h *SystemHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, resourceObject{
		Type: "api-info",
		ID:   "1",
		Attributes: apiInfoAttributes{
			Message:   "Logbook API",
			Version:   "1.0.0",
			Endpoints: "/api",
		},
	})
}

// Health はデータベースの疎通を含むヘルスチェック結果を返す。
// データベースに到達できない場合は503を返す。
// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	attrs := healthAttributes{
		Status:   "healthy",
		Database: "ok",
	}
	if err := h.db.PingContext(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		attrs = healthAttributes{
			Status:   "unhealthy",
			Database: "unreachable",
		}
	}

	writeData(w, status, resourceObject{
		Type:       "health-status",
		ID:         "1",
		Attributes: attrs,
	})
}
