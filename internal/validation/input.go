package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cityvoice/cityvoice-backend/internal/models"
)

// Константы валидации
const (
	MinUsernameLength         = 3
	MaxUsernameLength         = 30
	MinDisplayNameLength      = 2
	MaxDisplayNameLength      = 100
	MinReportTitleLength      = 3
	MaxReportTitleLength      = 255
	MinReportDescriptionLen   = 10
	MaxReportDescriptionLen   = 5000
	MaxLocationLength         = 255
	MinCommentLength          = 1
	MaxCommentLength          = 2000
	MaxReplyToLength          = 100
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	if unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}

	displayName = strings.TrimSpace(displayName)

	if err := ValidateLength("отображаемое имя", displayName, MinDisplayNameLength, MaxDisplayNameLength); err != nil {
		return err
	}

	displayNameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-_.,!?()]+$`)
	if !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("отображаемое имя содержит недопустимые символы")
	}

	return nil
}

// ValidateReportTitle проверяет заголовок обращения.
func ValidateReportTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок обращения обязателен")
	}

	return ValidateLength("заголовок обращения", strings.TrimSpace(title), MinReportTitleLength, MaxReportTitleLength)
}

// ValidateReportDescription проверяет описание обращения.
func ValidateReportDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание обращения обязательно")
	}

	return ValidateLength("описание обращения", strings.TrimSpace(description), MinReportDescriptionLen, MaxReportDescriptionLen)
}

// ValidateCategory проверяет, что категория входит в известный набор.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("категория обязательна")
	}
	if _, ok := models.ValidCategories[category]; !ok {
		return fmt.Errorf("неизвестная категория %q", category)
	}
	return nil
}

// ValidateReportStatus проверяет статус обращения.
func ValidateReportStatus(status string) error {
	if _, ok := models.ValidReportStatuses[status]; !ok {
		return fmt.Errorf("статус должен быть open, in-progress или resolved")
	}
	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		loc := strings.TrimSpace(*location)
		if err := ValidateLength("местоположение", loc, 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCommentText проверяет текст комментария.
func ValidateCommentText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("текст комментария не может быть пустым")
	}

	return ValidateLength("текст комментария", strings.TrimSpace(text), MinCommentLength, MaxCommentLength)
}

// ValidateReplyTo проверяет адресата ответа.
func ValidateReplyTo(replyTo *string) error {
	if replyTo != nil && *replyTo != "" {
		if err := ValidateLength("адресат ответа", strings.TrimSpace(*replyTo), 0, MaxReplyToLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateReportDate проверяет дату обращения: она не может быть в будущем
// дальше, чем на сутки (поправка на часовые пояса клиента).
func ValidateReportDate(date time.Time) error {
	if date.After(time.Now().Add(24 * time.Hour)) {
		return fmt.Errorf("дата обращения не может быть в будущем")
	}
	return nil
}
