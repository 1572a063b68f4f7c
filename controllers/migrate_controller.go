package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/migration"
	"github.com/TeamPaintbrush/thejerktracker/pkg/resp"
)

type MigrateController struct {
	engine *migration.Engine
	log    *zap.Logger
}

func NewMigrateController(engine *migration.Engine, log *zap.Logger) *MigrateController {
	return &MigrateController{engine: engine, log: log}
}

// Status reports both sides of the migration.
func (mc *MigrateController) Status(c *gin.Context) {
	status, err := mc.engine.Status(c.Request.Context())
	if err != nil {
		resp.Error(c, mc.log, err)
		return
	}
	resp.OK(c, status)
}

type MigrateActionReq struct {
	Action string `json:"action" binding:"required,oneof=migrate backup clear"`
}

// Action drives the engine: migrate (backup first, then transfer), backup
// (snapshot only), clear (drop the legacy copy).
func (mc *MigrateController) Action(c *gin.Context) {
	var req MigrateActionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.ValidationFailed(c, err)
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "migrate":
		result, err := mc.engine.Migrate(ctx)
		if err != nil {
			resp.Error(c, mc.log, err)
			return
		}
		resp.OK(c, gin.H{"message": "migration completed", "result": result})
	case "backup":
		path, err := mc.engine.Backup(ctx)
		if err != nil {
			resp.Error(c, mc.log, err)
			return
		}
		resp.OK(c, gin.H{"message": "backup created", "path": path})
	case "clear":
		if err := mc.engine.Clear(ctx); err != nil {
			resp.Error(c, mc.log, err)
			return
		}
		resp.OK(c, gin.H{"message": "legacy data cleared"})
	}
}
