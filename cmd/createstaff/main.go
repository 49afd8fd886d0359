// createstaff 创建管理员账号,用户已存在时将其提升为管理员
//
//	go run ./cmd/createstaff --username admin --password 'change-me-123'
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	appuser "github.com/xiebiao/bookshelf/internal/application/user"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

func main() {
	var (
		configPath string
		req        appuser.CreateStaffRequest
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径(默认按BOOKSTORE_ENV加载config/config.yaml)")
	pflag.StringVarP(&req.Username, "username", "u", "", "管理员用户名")
	pflag.StringVarP(&req.Password, "password", "p", "", "密码(提升已有用户时可省略)")
	pflag.StringVarP(&req.Email, "email", "e", "", "邮箱")
	pflag.Parse()

	if req.Username == "" {
		fmt.Fprintln(os.Stderr, "必须指定 --username")
		pflag.Usage()
		os.Exit(2)
	}

	if err := run(configPath, req); err != nil {
		fmt.Fprintf(os.Stderr, "创建管理员失败: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, req appuser.CreateStaffRequest) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Options{Level: "info", Format: "console", Output: "stderr"}); err != nil {
		return err
	}
	defer logger.Sync()

	db, err := sqldb.NewDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	uc := appuser.NewCreateStaffUseCase(sqldb.NewUserRepository(db), user.NewPasswordHasher(cfg.Security.BcryptCost))
	id, err := uc.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Printf("管理员 %s 已就绪 (id=%d)\n", req.Username, id)
	return nil
}
