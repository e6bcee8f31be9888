package calendar

// UnknownMonth is returned by MonthName for months outside 1..12.
const UnknownMonth = "Unknown"

// UnknownMonthArabic is returned by MonthNameArabic for months outside 1..12.
const UnknownMonthArabic = "غير معروف"

var monthNames = [12]string{
	"Muharram",
	"Safar",
	"Rabi' al-Awwal",
	"Rabi' al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

var monthNamesArabic = [12]string{
	"محرم",
	"صفر",
	"ربيع الأول",
	"ربيع الثاني",
	"جمادى الأولى",
	"جمادى الثانية",
	"رجب",
	"شعبان",
	"رمضان",
	"شوال",
	"ذو القعدة",
	"ذو الحجة",
}

// MonthName returns the English name of a Hijri month (1-12).
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return UnknownMonth
	}
	return monthNames[month-1]
}

// MonthNameArabic returns the Arabic name of a Hijri month (1-12).
func MonthNameArabic(month int) string {
	if month < 1 || month > 12 {
		return UnknownMonthArabic
	}
	return monthNamesArabic[month-1]
}
