package pages

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/internetqa/internetqa/internal/browser"
	"github.com/internetqa/internetqa/internal/config"
)

// Dynamic element page locators
const (
	AddElementButton = "//button[text()='Add Element']"
	DeleteButtons    = ".added-manually"
	Checkboxes       = "input[type='checkbox']"
	Dropdown         = "#dropdown"
	DropdownOptions  = "#dropdown option"
	SelectedOption   = "#dropdown option:checked"
)

// AddRemoveElementsPage adds and deletes buttons dynamically
type AddRemoveElementsPage struct {
	BasePage
}

// NewAddRemoveElementsPage creates an add/remove elements page object
func NewAddRemoveElementsPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) *AddRemoveElementsPage {
	return &AddRemoveElementsPage{BasePage: newBasePage(page, site, "add_remove_elements/", logger)}
}

// AddElement clicks the add button once
func (p *AddRemoveElementsPage) AddElement() error {
	return p.Click(AddElementButton)
}

// AddElements clicks "Add Element" count times, pausing between clicks
func (p *AddRemoveElementsPage) AddElements(count int) error {
	for i := 0; i < count; i++ {
		if err := p.AddElement(); err != nil {
			return err
		}
		p.Page.WaitForTimeout(float64((100 * time.Millisecond).Milliseconds()))
	}
	return nil
}

// DeleteButtonCount returns the number of added elements
func (p *AddRemoveElementsPage) DeleteButtonCount() (int, error) {
	count, err := p.Page.Locator(DeleteButtons).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count delete buttons: %w", err)
	}
	return count, nil
}

// RemoveElement clicks the delete button at index. Out of range is a no-op.
func (p *AddRemoveElementsPage) RemoveElement(index int) error {
	buttons, err := p.All(DeleteButtons)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(buttons) {
		return nil
	}
	if err := buttons[index].Click(); err != nil {
		return fmt.Errorf("failed to delete element %d: %w", index, err)
	}
	return nil
}

// RemoveAllElements deletes elements until none are left
func (p *AddRemoveElementsPage) RemoveAllElements() error {
	for {
		count, err := p.DeleteButtonCount()
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if err := p.RemoveElement(0); err != nil {
			return err
		}
	}
}

// CheckboxPage holds two checkboxes, the second initially checked
type CheckboxPage struct {
	BasePage
}

// NewCheckboxPage creates a checkboxes page object
func NewCheckboxPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) *CheckboxPage {
	return &CheckboxPage{BasePage: newBasePage(page, site, "checkboxes", logger)}
}

func (p *CheckboxPage) checkbox(index int) (playwright.Locator, error) {
	boxes, err := p.All(Checkboxes)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(boxes) {
		return nil, fmt.Errorf("checkbox %d out of range (%d present)", index, len(boxes))
	}
	return boxes[index], nil
}

// CheckboxCount returns the number of checkboxes on the page
func (p *CheckboxPage) CheckboxCount() (int, error) {
	boxes, err := p.All(Checkboxes)
	if err != nil {
		return 0, err
	}
	return len(boxes), nil
}

// IsChecked reports whether the checkbox at index is checked
func (p *CheckboxPage) IsChecked(index int) (bool, error) {
	box, err := p.checkbox(index)
	if err != nil {
		return false, err
	}
	return box.IsChecked()
}

// Toggle clicks the checkbox at index
func (p *CheckboxPage) Toggle(index int) error {
	box, err := p.checkbox(index)
	if err != nil {
		return err
	}
	return box.Click()
}

// Check makes sure the checkbox at index is checked
func (p *CheckboxPage) Check(index int) error {
	return p.setChecked(index, true)
}

// Uncheck makes sure the checkbox at index is unchecked
func (p *CheckboxPage) Uncheck(index int) error {
	return p.setChecked(index, false)
}

func (p *CheckboxPage) setChecked(index int, want bool) error {
	checked, err := p.IsChecked(index)
	if err != nil {
		return err
	}
	if checked == want {
		return nil
	}
	return p.Toggle(index)
}

// DropdownPage is a single select with two options
type DropdownPage struct {
	BasePage
}

// NewDropdownPage creates a dropdown page object
func NewDropdownPage(page *browser.Page, site config.SiteConfig, logger *zap.Logger) *DropdownPage {
	return &DropdownPage{BasePage: newBasePage(page, site, "dropdown", logger)}
}

// SelectByValue selects the option whose value attribute is value
func (p *DropdownPage) SelectByValue(value string) error {
	return p.selectOption(playwright.SelectOptionValues{Values: &[]string{value}})
}

// SelectByText selects the option labelled text
func (p *DropdownPage) SelectByText(text string) error {
	return p.selectOption(playwright.SelectOptionValues{Labels: &[]string{text}})
}

// SelectByIndex selects the option at index, counting the disabled placeholder
func (p *DropdownPage) SelectByIndex(index int) error {
	return p.selectOption(playwright.SelectOptionValues{Indexes: &[]int{index}})
}

func (p *DropdownPage) selectOption(values playwright.SelectOptionValues) error {
	if _, err := p.Page.Locator(Dropdown).SelectOption(values); err != nil {
		return fmt.Errorf("failed to select dropdown option: %w", err)
	}
	return nil
}

// SelectedOptionText returns the label of the selected option
func (p *DropdownPage) SelectedOptionText() (string, error) {
	text, err := p.Page.Locator(SelectedOption).TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read selected option: %w", err)
	}
	return text, nil
}

// OptionTexts returns every option label in document order
func (p *DropdownPage) OptionTexts() ([]string, error) {
	texts, err := p.Page.Locator(DropdownOptions).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("failed to read dropdown options: %w", err)
	}
	return texts, nil
}

// ExpectSelected waits until the option labelled text is selected
func (p *DropdownPage) ExpectSelected(text string) error {
	return p.ExpectText(SelectedOption, text)
}

// ExpectValue waits until the select's value is value
func (p *DropdownPage) ExpectValue(value string) error {
	return p.BasePage.ExpectValue(Dropdown, value)
}

// Value returns the select's current value
func (p *DropdownPage) Value() (string, error) {
	value, err := p.Page.Locator(Dropdown).InputValue()
	if err != nil {
		return "", fmt.Errorf("failed to read dropdown value: %w", err)
	}
	return value, nil
}
