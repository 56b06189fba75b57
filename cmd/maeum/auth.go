package main

import (
	"fmt"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/spf13/cobra"
)

func newRegisterCmd(get func() *app) *cobra.Command {
	var req models.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var err error
			if req.Email == "" {
				if req.Email, err = a.prompt("이메일: "); err != nil {
					return err
				}
			}
			if req.Name == "" {
				if req.Name, err = a.prompt("이름: "); err != nil {
					return err
				}
			}
			if req.Password == "" {
				if req.Password, err = a.prompt("비밀번호: "); err != nil {
					return err
				}
				if req.ConfirmPassword, err = a.prompt("비밀번호 확인: "); err != nil {
					return err
				}
			}
			resp, err := a.auth.Register(cmd.Context(), a.session, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "가입 완료: %s (%s)\n", resp.User.Name, resp.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLoginCmd(get func() *app) *cobra.Command {
	var req models.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			var err error
			if req.Email == "" {
				if req.Email, err = a.prompt("이메일: "); err != nil {
					return err
				}
			}
			if req.Password == "" {
				if req.Password, err = a.prompt("비밀번호: "); err != nil {
					return err
				}
			}
			resp, err := a.auth.Login(cmd.Context(), a.session, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "로그인: %s (%s)\n", resp.User.Name, resp.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.auth.Logout(cmd.Context(), a.session); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "로그아웃 되었습니다")
			return nil
		},
	}
}

func newWhoamiCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			user, err := a.auth.CurrentUser(cmd.Context(), a.session)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(a.out, "로그인하지 않았습니다")
				return nil
			}
			fmt.Fprintf(a.out, "%s (%s)\n", user.Name, user.Email)
			return nil
		},
	}
}
