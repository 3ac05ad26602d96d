// 本地联调用：为指定用户签发访问令牌
//
// 正式环境的令牌由统一身份服务签发，本服务只负责校验。
// 此脚本读取 configs/config.yaml 中的 jwt 配置，签出的令牌可直接放入 Authorization: Bearer 头。
//
// 用法: go run scripts/issue_token.go -user 1

package main

import (
	"exam_coach_backend/internal/util"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type jwtFile struct {
	JWT struct {
		Secret      string `yaml:"secret"`
		ExpireHours int    `yaml:"expire_hours"`
	} `yaml:"jwt"`
}

func main() {
	userID := flag.Uint("user", 0, "用户ID")
	email := flag.String("email", "", "邮箱（可选）")
	path := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	if *userID == 0 {
		log.Fatal("必须指定 -user")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg jwtFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	secret := cfg.JWT.Secret
	if env := os.Getenv("JWT_SECRET"); env != "" {
		secret = env
	}
	if secret == "" {
		log.Fatal("jwt.secret 未配置")
	}
	hours := cfg.JWT.ExpireHours
	if hours <= 0 {
		hours = 72
	}

	token, err := util.GenerateJWT(uint(*userID), *email, secret, time.Duration(hours)*time.Hour)
	if err != nil {
		log.Fatalf("签发令牌失败: %v", err)
	}
	fmt.Println(token)
}
