package main

import (
	"log"
	"os"

	"github.com/penwyp/travisify/cmd"
)

// main 为 CLI 入口，调用 cmd.Execute。
// 各模式内的失败只会报告到 stderr，这里只处理参数解析等命令级错误。
func main() {
	if err := cmd.Execute(); err != nil {
		log.Printf("travisify error: %v", err)
		os.Exit(1)
	}
}
