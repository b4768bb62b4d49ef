// Package params はパスパラメータのバインドと検証を提供します。
package params

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"sighting_backend/internal/shared/apperror"
)

// MsgInvalidID はIDが整数として解釈できない場合のメッセージです。
const MsgInvalidID = "invalid ID format"

// ErrInvalidID はIDパラメータが正の整数でない場合に返されます。
var ErrInvalidID = apperror.Invalid(MsgInvalidID)

// PathID は name で指定されたパスパラメータを正の整数IDとしてバインドします。
// 数値でない値、0以下の値はErrInvalidIDとなり、ストアへのアクセスは行われません。
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}
