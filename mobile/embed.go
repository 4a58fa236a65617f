//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// //go:embed 只能嵌入包目录下的文件，构建前需要把项目根目录的
// data/stories 复制到 mobile/data/stories：
//
//	mkdir -p mobile/data && cp -r data/stories mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/stories
var dataFS embed.FS
