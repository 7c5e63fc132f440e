package conversation

const (
	msgGreeting       = "Привіт! Надішли /thanks щоб залишити вдячність або /export щоб отримати список вдячностей."
	msgMenuHint       = "Обери дію в меню нижче 👇"
	msgAskRecipient   = "Кому ти хочеш подякувати?"
	msgAskRecipientRe = "Напиши ім'я того, кому хочеш подякувати."
	msgAskBody        = "За що саме? (можна з емодзі)"
	msgBodyRejected   = "Напиши, будь ласка, кілька слів вдячності (щонайменше 5 символів)."
	msgSaved          = "Вдячність збережено ❤️"
	msgDuplicate      = "Така вдячність вже збережена сьогодні ❤️"
	msgCancelled      = "Скасовано"
	msgNothingToStop  = "Немає чого скасовувати."
	msgBusy           = "Спочатку заверши поточну дію або натисни /cancel."
	msgUnknownCommand = "Не знаю такої команди. Спробуй /thanks або /export."
	msgAskRange       = "За який період вивантажити вдячності?"
	msgNotAdmin       = "Вибач, ця дія доступна лише адміністратору."
	msgNoResults      = "Немає вдячностей за обраний період."
	msgExportTitle    = "🙌 Вдячності за останні %d днів:"
	msgCleaned        = "Усі вдячності видалено (%d)."
	msgFailure        = "Щось пішло не так, спробуй ще раз."
	msgTextOnly       = "Я розумію лише текстові повідомлення 🙂"
)
