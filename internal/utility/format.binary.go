package utility

import (
	"github.com/valyala/fasthttp"
)

// WriteBinary ghi nội dung nhị phân (audio, file export) trực tiếp vào fasthttp response.
// Không cache để client luôn nhận bản mới nhất sau khi tạo lại.
func WriteBinary(ctx *fasthttp.RequestCtx, contentType string, data []byte) {
	ctx.Response.Header.SetContentType(contentType)
	ctx.Response.Header.Set("Cache-Control", "no-store")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
	ctx.Response.Header.SetContentLength(len(data))
}
