// AngelaMos | 2026
// messages.go

package i18n

var messages = map[Language]map[string]string{
	English: {
		"nav.home":       "Home",
		"nav.about":      "About",
		"nav.membership": "Membership",
		"nav.store":      "Store",
		"nav.gallery":    "Gallery",
		"nav.news":       "News",
		"nav.member":     "My Account",
		"nav.admin":      "Admin",
		"nav.login":      "Login",
		"nav.logout":     "Logout",

		"common.loading":   "Loading...",
		"common.error":     "Error occurred",
		"common.save":      "Save",
		"common.cancel":    "Cancel",
		"common.delete":    "Delete",
		"common.edit":      "Edit",
		"common.retry":     "Try again",
		"common.back_home": "Back to home",
		"common.language":  "Language",
		"common.not_found": "Page not found",

		"common.rate_limited": "Too many requests. Please wait a moment and try again.",

		"auth.signin":              "Sign in",
		"auth.signup":              "Sign up",
		"auth.email":               "Email",
		"auth.password":            "Password",
		"auth.confirm_password":    "Confirm password",
		"auth.signin_success":      "Successfully signed in",
		"auth.signup_success":      "Account created successfully",
		"auth.welcome":             "Welcome to RossoVerde",
		"auth.password_mismatch":   "Passwords do not match",
		"auth.password_too_short":  "Password must be at least 6 characters",
		"auth.already_registered":  "This email is already registered",
		"auth.invalid_credentials": "Invalid email or password",
		"auth.signin_error":        "An error occurred during sign in",
		"auth.signup_error":        "An error occurred during sign up",

		"guard.unauthorized_title": "Unauthorized Access",
		"guard.unauthorized":       "You do not have permission to access the admin panel",
		"guard.failed_title":       "Something went wrong",
		"guard.failed":             "Your profile could not be loaded. Please try again.",

		"admin.users":            "Users",
		"admin.memberships":      "Memberships",
		"admin.store":            "Store",
		"admin.orders":           "Orders",
		"admin.posts":            "Posts",
		"admin.gallery":          "Gallery",
		"admin.cms":              "Content",
		"admin.membership-tiers": "Membership Tiers",
	},
	French: {
		"nav.home":       "Accueil",
		"nav.about":      "À Propos",
		"nav.membership": "Adhésion",
		"nav.store":      "Boutique",
		"nav.gallery":    "Galerie",
		"nav.news":       "Actualités",
		"nav.member":     "Mon Compte",
		"nav.admin":      "Admin",
		"nav.login":      "Connexion",
		"nav.logout":     "Déconnexion",

		"common.loading":   "Chargement...",
		"common.error":     "Erreur survenue",
		"common.save":      "Enregistrer",
		"common.cancel":    "Annuler",
		"common.delete":    "Supprimer",
		"common.edit":      "Modifier",
		"common.retry":     "Réessayer",
		"common.back_home": "Retour à l'accueil",
		"common.language":  "Langue",
		"common.not_found": "Page introuvable",

		"common.rate_limited": "Trop de requêtes. Veuillez patienter un instant puis réessayer.",

		"auth.signin":              "Se connecter",
		"auth.signup":              "S'inscrire",
		"auth.email":               "Email",
		"auth.password":            "Mot de passe",
		"auth.confirm_password":    "Confirmer le mot de passe",
		"auth.signin_success":      "Connexion réussie",
		"auth.signup_success":      "Compte créé avec succès",
		"auth.welcome":             "Bienvenue dans RossoVerde",
		"auth.password_mismatch":   "Les mots de passe ne correspondent pas",
		"auth.password_too_short":  "Le mot de passe doit contenir au moins 6 caractères",
		"auth.already_registered":  "Cet email est déjà enregistré",
		"auth.invalid_credentials": "Email ou mot de passe incorrect",
		"auth.signin_error":        "Une erreur s'est produite lors de la connexion",
		"auth.signup_error":        "Une erreur s'est produite lors de l'inscription",

		"guard.unauthorized_title": "Accès non autorisé",
		"guard.unauthorized":       "Vous n'avez pas l'autorisation d'accéder au panneau d'administration",
		"guard.failed_title":       "Une erreur est survenue",
		"guard.failed":             "Votre profil n'a pas pu être chargé. Veuillez réessayer.",

		"admin.users":            "Utilisateurs",
		"admin.memberships":      "Adhésions",
		"admin.store":            "Boutique",
		"admin.orders":           "Commandes",
		"admin.posts":            "Articles",
		"admin.gallery":          "Galerie",
		"admin.cms":              "Contenu",
		"admin.membership-tiers": "Niveaux d'adhésion",
	},
	Arabic: {
		"nav.home":       "الرئيسية",
		"nav.about":      "حول",
		"nav.membership": "العضوية",
		"nav.store":      "المتجر",
		"nav.gallery":    "المعرض",
		"nav.news":       "الأخبار",
		"nav.member":     "حسابي",
		"nav.admin":      "الإدارة",
		"nav.login":      "تسجيل الدخول",
		"nav.logout":     "تسجيل الخروج",

		"common.loading":   "جاري التحميل...",
		"common.error":     "حدث خطأ",
		"common.save":      "حفظ",
		"common.cancel":    "إلغاء",
		"common.delete":    "حذف",
		"common.edit":      "تحرير",
		"common.retry":     "حاول مرة أخرى",
		"common.back_home": "العودة إلى الرئيسية",
		"common.language":  "اللغة",
		"common.not_found": "الصفحة غير موجودة",

		"common.rate_limited": "طلبات كثيرة جدًا. يرجى الانتظار قليلًا ثم المحاولة مرة أخرى.",

		"auth.signin":              "تسجيل الدخول",
		"auth.signup":              "إنشاء حساب",
		"auth.email":               "البريد الإلكتروني",
		"auth.password":            "كلمة المرور",
		"auth.confirm_password":    "تأكيد كلمة المرور",
		"auth.signin_success":      "تم تسجيل الدخول بنجاح",
		"auth.signup_success":      "تم إنشاء الحساب بنجاح",
		"auth.welcome":             "مرحباً بك في RossoVerde",
		"auth.password_mismatch":   "كلمات المرور غير متطابقة",
		"auth.password_too_short":  "كلمة المرور يجب أن تكون 6 أحرف على الأقل",
		"auth.already_registered":  "هذا البريد الإلكتروني مسجل مسبقاً",
		"auth.invalid_credentials": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		"auth.signin_error":        "حدث خطأ أثناء تسجيل الدخول",
		"auth.signup_error":        "حدث خطأ أثناء التسجيل",

		"guard.unauthorized_title": "وصول غير مصرح",
		"guard.unauthorized":       "ليس لديك صلاحية للوصول إلى لوحة الإدارة",
		"guard.failed_title":       "حدث خطأ",
		"guard.failed":             "تعذر تحميل ملفك الشخصي. يرجى المحاولة مرة أخرى.",

		"admin.users":            "المستخدمون",
		"admin.memberships":      "العضويات",
		"admin.store":            "المتجر",
		"admin.orders":           "الطلبات",
		"admin.posts":            "المقالات",
		"admin.gallery":          "المعرض",
		"admin.cms":              "المحتوى",
		"admin.membership-tiers": "مستويات العضوية",
	},
}

// T looks key up in lang, then English, then returns the key itself.
func T(lang Language, key string) string {
	if v, ok := messages[lang][key]; ok && v != "" {
		return v
	}
	if v, ok := messages[English][key]; ok {
		return v
	}
	return key
}
