package cmd

import (
	"fmt"

	internalApp "github.com/lumapix/photo-share-service/internal/app"
	pkgapp "github.com/lumapix/photo-share-service/pkg/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type tokenFlags struct {
	config   string
	operator string
}

func init() {
	tokenEnv := new(tokenFlags)

	// 管理端没有用户体系，运维通过该命令签发管理 JWT
	var tokenCommand = &cobra.Command{
		Use:   "token [-c config_file] [-o operator]",
		Short: "Generate an admin API token. // 生成管理 API Token。",
		Run: func(cmd *cobra.Command, args []string) {
			appConfig, _, err := internalApp.LoadConfig(tokenEnv.config)
			if err != nil {
				bootstrapLogger.Error("failed to load config", zap.Error(err))
				return
			}

			tm := pkgapp.NewTokenManager(pkgapp.TokenConfig{
				SecretKey: appConfig.Security.AuthTokenKey,
				Expiry:    appConfig.GetTokenExpiry(),
			})

			token, err := tm.Generate(tokenEnv.operator, "")
			if err != nil {
				bootstrapLogger.Error("failed to generate token", zap.Error(err))
				return
			}
			fmt.Println(token)
		},
	}

	rootCmd.AddCommand(tokenCommand)
	fs := tokenCommand.Flags()
	fs.StringVarP(&tokenEnv.config, "config", "c", "config/config.yaml", "config file")
	fs.StringVarP(&tokenEnv.operator, "operator", "o", "admin", "operator name recorded in the token")
}
