// embed.go - 内置资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import _ "embed"

// builtinPresets 未指定 --particles 时使用的粒子预设
//
//go:embed data/particles.yaml
var builtinPresets []byte
