package service

import (
	"errors"
	"testing"

	"github.com/shipdesk/internal/config"
	"github.com/shipdesk/internal/constants"
)

func TestCaptchaServiceDisabled(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: constants.CaptchaProviderNone})

	if svc.LoginRequired() {
		t.Error("LoginRequired = true for provider none")
	}
	if err := svc.VerifyLogin("", ""); err != nil {
		t.Errorf("verify with captcha disabled: err = %v, want nil", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaInvalid) {
		t.Errorf("generate with provider none: err = %v, want ErrCaptchaInvalid", err)
	}
}

func TestCaptchaServiceImageChallenge(t *testing.T) {
	cfg := config.CaptchaConfig{
		Provider: constants.CaptchaProviderImage,
		Login:    true,
	}
	cfg.Image.Length = 4
	cfg.Image.Width = 120
	cfg.Image.Height = 40
	svc := NewCaptchaService(cfg)

	if !svc.LoginRequired() {
		t.Fatal("LoginRequired = false, want true")
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Errorf("challenge = %+v, want id and image", challenge)
	}

	if err := svc.VerifyLogin(challenge.CaptchaID, "wrong"); !errors.Is(err, ErrCaptchaInvalid) {
		t.Errorf("wrong code: err = %v, want ErrCaptchaInvalid", err)
	}
	if err := svc.VerifyLogin("", ""); !errors.Is(err, ErrCaptchaInvalid) {
		t.Errorf("blank code: err = %v, want ErrCaptchaInvalid", err)
	}
}
