// settings.go
package config

import "time"

// StockMock pages and sweep defaults
const (
	/**
	[[SITE]]
	*/
	BaseURL = "https://www.stockmock.in"

	//Basket opened when -basket and STOCKMOCK_BASKET_ID are both unset
	DefaultBasketID = "01KDWD18YRS7FRJ5G1Z38VY7WP"

	//Session cookie injected instead of phone/password login when provided
	SessionCookieName   = "token"
	SessionCookieDomain = ".stockmock.in"

	/**
	[[SWEEP]]
	*/
	StopLossLow  = 5   //Lowest SL % swept on both legs
	StopLossHigh = 100 //Highest SL % swept on both legs

	EntryStart = "09:16" //First entry time
	EntryEnd   = "12:00" //Last entry time (inclusive)

	//Result card titles scraped after each run
	MetricOverallProfit = "Overall profit"
	MetricExpectancy    = "Expectancy"

	//Option picked in the basket settings dropdown before sweeping
	DayFilterOption = "Weekday"

	/**
	[[OUTPUT]]
	*/
	ResultsFile  = "target/StrategyTestResults.xlsx"
	ResultsSheet = "Strategy Results"

	/**
	[[TIMING]]
	*/
	StepTimeout    = 10 * time.Second       //Bound on every single page step
	RunTimeout     = 60 * time.Second       //Bound on a strategy run until results settle
	ModalTimeout   = 2 * time.Second        //Optional modals (promo, update confirmation)
	ResultPoll     = 500 * time.Millisecond //Result view poll interval
	UnchangedPolls = 8                      //Polls with an unchanged view before accepting it

	//Web Agent
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// XPath locators (evaluated with chromedp.BySearch)
const (
	//Login
	PhoneInputSelector    = `//input[@id='user-phone-no']`
	PasswordInputSelector = `//input[@type='password']`
	LoginButtonSelector   = `//button[contains(text(), 'LogIn') or contains(text(), 'Login') or contains(text(), 'login')]`
	CloseModalSelector    = `//button[contains(@class, 'close')]`

	//Basket
	BasketNavSelector     = `//a[contains(@class, 'header_nav_link') and .//span[contains(text(), 'Basket')]]`
	BasketItemSelector    = `//li[@data-basket-id='%s']`
	DayFilterSelector     = `/html/body/div[1]/div[4]/div[3]/div[1]/div[4]/div[1]/div/select`
	EditStrategySelector  = `//div[@id='basket-strategy-0']//a[@class='fa fa-pencil']`
	RunStrategySelector   = `//div[@id='basket-strategy-0']//div[@class='strategy_running_status __run']`
	SaveStrategySelector  = `//button[@class='__button __full__button __run__button'][.//i[@class='fa fa-save __share__icon']]`
	ConfirmUpdateSelector = `/html/body/div[1]/div[6]/div[1]/div/div/div[2]/button[2]`
	L1StopLossSelector    = `/html/body/div[1]/div[5]/div[1]/div/div/div[2]/div[3]/div[3]/div[2]/div[2]/div[2]/div[2]/div[1]/input`
	L2StopLossSelector    = `/html/body/div[1]/div[5]/div[1]/div/div/div[2]/div[3]/div[4]/div[2]/div[2]/div[2]/div[2]/div[1]/input`
	EntryHourSelector     = `/html/body/div[1]/div[5]/div[1]/div/div/div[2]/div[5]/div[1]/div/div/div/div[3]/div/div[1]/select`
	EntryMinuteSelector   = `/html/body/div[1]/div[5]/div[1]/div/div/div[2]/div[5]/div[1]/div/div/div/div[3]/div/div[2]/select`

	//Results (CSS, parsed out of the captured card markup)
	ResultCardQuery  = "div.average__card"
	ResultTitleQuery = "div.__title"
	ResultValueQuery = "div.__value"
)
