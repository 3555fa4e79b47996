package pages

import (
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
)

// Login page locators
const (
	UsernameInput  = "#username"
	PasswordInput  = "#password"
	LoginButton    = "button[type='submit']"
	FlashMessage   = ".flash"
	SuccessMessage = ".flash.success"
	ErrorMessage   = ".flash.error"
	LogoutButton   = "a[href='/logout']"
)

// LoginPage is the form authentication page
type LoginPage struct {
	BasePage
}

// NewLoginPage creates a login page object
func NewLoginPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) *LoginPage {
	return &LoginPage{BasePage: newBasePage(page, site, "login", logger)}
}

// Login submits the form with the given credentials
func (p *LoginPage) Login(username, password string) error {
	if err := p.Fill(UsernameInput, username); err != nil {
		return err
	}
	if err := p.Fill(PasswordInput, password); err != nil {
		return err
	}
	return p.Click(LoginButton)
}

// LoginWithValidCredentials logs in with the configured site credentials
func (p *LoginPage) LoginWithValidCredentials() error {
	return p.Login(p.Site.Username, p.Site.Password)
}

// LoginWithInvalidCredentials logs in with credentials the site rejects
func (p *LoginPage) LoginWithInvalidCredentials() error {
	return p.Login("invaliduser", "invalidpassword")
}

// FlashMessage returns the flash banner text
func (p *LoginPage) FlashMessage() (string, error) {
	return p.Text(FlashMessage)
}

// IsSuccessMessageDisplayed reports whether a success flash is visible
func (p *LoginPage) IsSuccessMessageDisplayed() bool {
	return p.IsVisible(SuccessMessage)
}

// IsErrorMessageDisplayed reports whether an error flash is visible
func (p *LoginPage) IsErrorMessageDisplayed() bool {
	return p.IsVisible(ErrorMessage)
}

// IsLogoutButtonDisplayed is true inside the secure area
func (p *LoginPage) IsLogoutButtonDisplayed() bool {
	return p.IsVisible(LogoutButton)
}

// Logout clicks the logout button
func (p *LoginPage) Logout() error {
	return p.Click(LogoutButton)
}

// IsLoginFormDisplayed reports whether every form control is visible
func (p *LoginPage) IsLoginFormDisplayed() bool {
	return p.IsVisible(UsernameInput) &&
		p.IsVisible(PasswordInput) &&
		p.IsVisible(LoginButton)
}

// ClearUsername empties the username field
func (p *LoginPage) ClearUsername() error {
	return p.Fill(UsernameInput, "")
}

// ClearPassword empties the password field
func (p *LoginPage) ClearPassword() error {
	return p.Fill(PasswordInput, "")
}
