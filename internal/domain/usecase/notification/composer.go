package notification

import (
	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/msg"
)

// Compose renders the notification for a city. It never fails and never returns an empty body.
func Compose(city string, reading model.WeatherReading) model.NotificationMessage {
	condition := model.ParseCondition(reading.Condition)

	var body string
	switch condition.Kind {
	case model.ConditionRain:
		body = msg.GetMessage("notification.body.rain", city)
	case model.ConditionClear:
		body = msg.GetMessage("notification.body.clear", city)
	case model.ConditionClouds:
		body = msg.GetMessage("notification.body.clouds", city)
	case model.ConditionSnow:
		body = msg.GetMessage("notification.body.snow", city)
	default:
		body = msg.GetMessage("notification.body.generic", city, condition.Raw,
			reading.TemperatureCelsius, reading.HumidityPercent, reading.WindSpeed)
	}

	return model.NotificationMessage{
		Heading: msg.GetMessage("notification.heading", city),
		Body:    body,
	}
}
