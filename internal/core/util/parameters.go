package util

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

func FormToParams[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBind(&params); err != nil {
		return params, err
	}

	return params, nil
}

func Serialize(data any) ([]byte, error) {
	return json.Marshal(data)
}
