package services

import (
	"context"
	"strconv"

	"github.com/platziflix/catalog-backend/internal/platform/dbctx"
)

func dbcFor(ctx context.Context) dbctx.Context { return dbctx.New(ctx) }

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }
