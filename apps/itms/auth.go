package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/guard"
	"github.com/itmsdev/itms-client/core/session"
)

var readPasswordFunc = term.ReadPassword // mockable

func (cli *commandLine) loginCmd() *cobra.Command {
	var rememberMe bool

	cmd := &cobra.Command{
		Use:   "login USERNAME",
		Short: "Sign in; prompts for the password and, when required, an OTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fmt.Print("Enter password: ")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}

			if err = cli.sess.Login(ctx, args[0], string(pwd), rememberMe); err != nil {
				return fmt.Errorf("%s", cli.sess.State().LastError)
			}

			st := cli.sess.State()
			if st.OTPPending {
				if err = cli.otpChallenge(ctx); err != nil {
					return err
				}
				st = cli.sess.State()
			}
			if err = cli.saveToken(); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s (%s)\n", st.Identity.Username, strings.Join(st.Identity.Roles, ", "))
			fmt.Printf("Landing route: %s\n", guard.Home(st))
			return nil
		},
	}
	cmd.Flags().BoolVar(&rememberMe, "remember-me", false, "keep the session across restarts")
	return cmd
}

// otpChallenge loops until the code is accepted or the user gives up.
// "resend" asks for a fresh code, subject to the local cool-down.
func (cli *commandLine) otpChallenge(ctx context.Context) error {
	cooldown := session.NewCountdown()
	cooldown.Start(cli.conf.OTPResendCooldown)
	defer cooldown.Stop()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter OTP (or \"resend\"): ")
		if !in.Scan() {
			return fmt.Errorf("OTP challenge aborted")
		}
		input := core.CleanString(in.Text())

		if strings.EqualFold(input, "resend") {
			if cooldown.Active() {
				fmt.Printf("Please wait %ds before requesting a new code.\n", cooldown.Remaining())
				continue
			}
			if err := cli.sess.ResendOTP(ctx); err != nil {
				fmt.Printf("%s\n", cli.sess.State().LastError)
				continue
			}
			cooldown.Start(cli.conf.OTPResendCooldown)
			fmt.Println("A new OTP has been sent.")
			continue
		}

		if err := cli.sess.VerifyOTP(ctx, input); err != nil {
			fmt.Printf("%s\n", cli.sess.State().LastError)
			continue
		}
		return nil
	}
}

func (cli *commandLine) verifyOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-otp CODE",
		Short: "Complete a pending OTP challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.sess.VerifyOTP(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", cli.sess.State().LastError)
			}
			if err := cli.saveToken(); err != nil {
				return err
			}
			fmt.Println("OTP verified.")
			return nil
		},
	}
}

func (cli *commandLine) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.sess.FetchMe(cmd.Context())
			st := cli.sess.State()
			if st.Identity == nil {
				return fmt.Errorf("not logged in")
			}
			id := st.Identity
			fmt.Printf("%s <%s>\n", id.FullName, id.Email)
			fmt.Printf("  username: %s\n", id.Username)
			fmt.Printf("  roles:    %s\n", strings.Join(id.Roles, ", "))
			if id.Department != nil {
				fmt.Printf("  dept:     %s\n", id.Department.Name)
			}
			fmt.Printf("  home:     %s\n", guard.Home(st))
			return nil
		},
	}
}

func (cli *commandLine) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and drop the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.sess.Logout(cmd.Context())
			if err := cli.saveToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func (cli *commandLine) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password EMAIL",
		Short: "Request a password reset for the given email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.sess.ForgotPassword(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", cli.sess.State().LastError)
			}
			fmt.Println("If the email matches an account, a reset link has been sent.")
			return nil
		},
	}
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password [TICKET]",
		Short: "Set a new password; prompts for it twice",
		Long: `Set a new password using a reset ticket.

Against a real backend the ticket comes from the reset email. Against the
mock backend the pending reset is tracked locally and no ticket is needed;
complete the emailed OTP with "verify-otp" first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ticket string
			if len(args) == 1 {
				ticket = args[0]
			}

			fmt.Print("New password: ")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			fmt.Print("Confirm password: ")
			confirm, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			if string(pwd) != string(confirm) {
				return fmt.Errorf("passwords do not match")
			}

			if err = cli.sess.ResetPassword(cmd.Context(), ticket, string(pwd)); err != nil {
				return fmt.Errorf("%s", cli.sess.State().LastError)
			}
			fmt.Println("Password reset. You can now log in.")
			return nil
		},
	}
}
