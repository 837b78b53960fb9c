package database

import (
	"errors"
	"time"

	"zoomies/pkg/metrics"

	"gorm.io/gorm"
)

const metricsStartKey = "metrics:start_time"

// registerMetricsCallbacks 在 gorm 回调链前后打点，记录查询耗时和错误
// 记录不存在属于预期结果，不计入错误指标
func registerMetricsCallbacks(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		db.InstanceSet(metricsStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			v, ok := db.InstanceGet(metricsStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			err := db.Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = nil
			}
			metrics.GetGlobalCollector().RecordDBQuery(operation, table, time.Since(start), err)
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("metrics:after_create", after("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("metrics:after_query", after("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("metrics:after_update", after("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", after("delete")); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("metrics:before_raw", before); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("metrics:after_raw", after("raw")); err != nil {
		return err
	}
	return nil
}
