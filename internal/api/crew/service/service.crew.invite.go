// Package crewsvc - Gửi email mời tham gia dự án qua SMTP.
package crewsvc

import (
	"context"
	"fmt"

	"onset_studio/internal/common"
	"onset_studio/internal/global"

	"gopkg.in/gomail.v2"
)

// SendInvite gửi email mời một người tham gia dự án.
// Yêu cầu SMTP đã cấu hình — môi trường dev không có SMTP sẽ nhận lỗi
// cấu hình thay vì treo khi dial.
func (s *CrewMembershipService) SendInvite(ctx context.Context, projectName string, inviterName string, recipientEmail string, recipientName string, role string) error {
	cfg := global.ServerConfig
	if cfg.SMTPHost == "" {
		return common.NewError(common.ErrCodeValidationInput, "SMTP chưa được cấu hình, không thể gửi email mời", common.StatusBadRequest, nil)
	}
	if role == "" {
		role = "Crew"
	}
	greeting := recipientName
	if greeting == "" {
		greeting = recipientEmail
	}

	htmlContent := fmt.Sprintf(`
		<p>Chào %s,</p>
		<p><b>%s</b> mời bạn tham gia dự án <b>%s</b> với vai trò <b>%s</b>.</p>
		<p><a href="%s" style="display:inline-block;padding:10px 20px;text-decoration:none;border-radius:5px;background-color:#007bff;color:#fff;">Mở dự án</a></p>
	`, greeting, inviterName, projectName, role, cfg.FrontendURL)

	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.SMTPFrom)
	msg.SetHeader("To", recipientEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Lời mời tham gia dự án %s", projectName))
	msg.SetBody("text/html", htmlContent)

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return dialer.DialAndSend(msg)
}
