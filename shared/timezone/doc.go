// Package timezone pins every wall clock value the API reads or writes to the restaurant's timezone.
//
// The zone comes from APP_TIMEZONE and is loaded by Init at startup. Until then UTC is used. Reservation slots,
// scheduled cart dates and offer windows are all parsed through ParseDate and ParseClock so that a
// client sending "7:30 PM" or "03/14/2025" lands on the same instant as one sending "19:30" or
// "2025-03-14".
package timezone
