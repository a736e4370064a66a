package adaptor

import (
	"context"

	"booklet-show/biz/application/dto/basic"
	"booklet-show/biz/infrastructure/util"
	"booklet-show/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/status"
)

// PostProcess 统一出口 业务错误以{code,msg}返回 其余错误按500处理
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "[%s] traceId=%s req=%s, resp=%s, err=%v",
		c.Path(), trace.SpanContextFromContext(ctx).TraceID(), util.JSONF(req), util.JSONF(resp), err)
	if err == nil {
		c.JSON(consts.StatusOK, resp)
		return
	}

	st, ok := status.FromError(err)
	if !ok {
		log.CtxError(ctx, "[%s] internal error, err=%v", c.Path(), err)
		c.String(consts.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(consts.StatusOK, &basic.Response{
		Code: int64(st.Code()),
		Msg:  st.Message(),
	})
}
