package config

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// ParseColor 解析 CSS 颜色字符串（"orange", "#ffffff", "rgb(10, 20, 30)" 等）
func ParseColor(str string) (color.NRGBA, error) {
	c, err := css.Parse(str)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", str, err)
	}

	return color.NRGBA{
		R: uint8(255*c.R + 0.5),
		G: uint8(255*c.G + 0.5),
		B: uint8(255*c.B + 0.5),
		A: uint8(255*c.A + 0.5),
	}, nil
}

// ParseColorOr 解析颜色，失败时返回 fallback
//
// 配置在加载时已经通过 Validate，这里只用于渲染路径。
func ParseColorOr(str string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(str)
	if err != nil {
		return fallback
	}
	return c
}
